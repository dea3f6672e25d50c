package metrics

import "errors"

var (
	// ErrLineTooLong is returned when a collector stdout line exceeds the
	// decoder's configured maximum size. The line is rejected, not buffered.
	ErrLineTooLong = errors.New("metrics: line exceeds maximum size")

	// ErrEmptyLine is returned for a blank line; callers should skip it
	// rather than log it as a parse failure.
	ErrEmptyLine = errors.New("metrics: empty line")

	// ErrMalformed wraps an underlying json.Unmarshal failure.
	ErrMalformed = errors.New("metrics: malformed sample")
)
