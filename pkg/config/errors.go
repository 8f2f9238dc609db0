package config

import "errors"

var (
	// ErrParsingConfig wraps env tag parsing failures.
	ErrParsingConfig = errors.New("config.parsing_failed")

	// ErrConfigNotLoaded is returned when a cached config vanished
	// between parse and read, which indicates a programming error.
	ErrConfigNotLoaded = errors.New("config.not_loaded")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("config.nil_pointer")
)
