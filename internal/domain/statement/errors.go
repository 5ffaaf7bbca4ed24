package statement

import "errors"

// Failure taxonomy of the pipeline. Each sentinel maps to a distinct
// user-describable outcome upstream; callers branch with errors.Is. All of
// them are recoverable at single-attachment granularity — one bad attachment
// never blocks its siblings in a batch.
var (
	// ErrUnrecognizedLayout means the header row or data region could not be
	// located. Non-retryable: the file is not one of the known bank exports.
	ErrUnrecognizedLayout = errors.New("statement: unrecognized layout")

	// ErrCorruptedInput means the byte buffer is not a valid spreadsheet
	// container. The remedy is re-saving and resending the file.
	ErrCorruptedInput = errors.New("statement: corrupted input file")

	// ErrEmptyAfterFilter means the requested date range removed every row.
	// It usually signals the range does not overlap the statement period.
	ErrEmptyAfterFilter = errors.New("statement: no movements in the requested date range")

	// ErrMissingRequiredTags means template rendering was requested but no
	// row carries the CP/CB sentinel markers.
	ErrMissingRequiredTags = errors.New("statement: file lacks required CP/CB markers")
)
