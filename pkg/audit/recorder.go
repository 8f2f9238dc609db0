package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Recorder writes audit records with two durability modes.
//
// Record is synchronous: it returns only after the storage confirms the
// write, and its error must abort the guarded mutation - losing the
// audit trail for a state change is treated as worse than losing the
// change. TryRecord is best-effort for read-path denial events: a
// storage failure is logged and swallowed so it can never block or fail
// the guarded action.
type Recorder struct {
	storage Storage
	log     *slog.Logger
}

// NewRecorder creates a recorder over the given storage. A nil logger
// defaults to slog.Default().
func NewRecorder(storage Storage, log *slog.Logger) *Recorder {
	if storage == nil {
		panic("audit: storage cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{storage: storage, log: log}
}

// Record durably writes the record before returning. Mutating
// administrative actions must call this and abort on error.
func (r *Recorder) Record(ctx context.Context, rec Record) error {
	r.stamp(&rec)
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := r.storage.Store(ctx, rec); err != nil {
		return errors.Join(ErrStorageFailed, err)
	}
	return nil
}

// TryRecord writes the record best-effort. Failures are logged, never
// returned, so read-path denials stay cheap and non-blocking.
func (r *Recorder) TryRecord(ctx context.Context, rec Record) {
	r.stamp(&rec)
	if err := rec.Validate(); err != nil {
		r.log.WarnContext(ctx, "audit: dropping invalid record",
			slog.String("action", rec.Action), slog.Any("error", err))
		return
	}
	if err := r.storage.Store(ctx, rec); err != nil {
		r.log.ErrorContext(ctx, "audit: failed to store record",
			slog.String("action", rec.Action),
			slog.String("actor_id", rec.ActorID.String()),
			slog.Any("error", err))
	}
}

func (r *Recorder) stamp(rec *Record) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}
