package audit

import "errors"

// Domain errors for audit operations.
var (
	// ErrRecordValidation is returned when a record is missing required
	// fields.
	ErrRecordValidation = errors.New("audit.record_validation")

	// ErrStorageFailed is returned when a record could not be durably
	// written. For mutating administrative actions callers must treat
	// this as a reason to abort the mutation.
	ErrStorageFailed = errors.New("audit.storage_failed")

	// ErrStorageClosed is returned when writing to a closed async
	// writer.
	ErrStorageClosed = errors.New("audit.storage_closed")
)
