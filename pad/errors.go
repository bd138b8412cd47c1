package pad

import "errors"

var (
	// ErrInvalidLength indicates a requested pad or reservation length
	// that is zero or negative.
	ErrInvalidLength = errors.New("pad: length must be a positive integer")

	// ErrPadExhausted indicates the pad has fewer unused bytes remaining
	// than the operation requires. The pad itself is still usable for
	// smaller operations; callers should provision a new pad.
	ErrPadExhausted = errors.New("pad: insufficient unused bytes remaining")

	// ErrCorruptPad indicates stored pad state failed structural
	// validation on load (offset out of range, length mismatch).
	ErrCorruptPad = errors.New("pad: stored pad state is corrupt")

	// ErrInvalidRange indicates a byte range lookup outside the pad.
	ErrInvalidRange = errors.New("pad: byte range out of bounds")

	// ErrPadNotFound indicates no pad exists for the given handle.
	ErrPadNotFound = errors.New("pad: no pad exists for handle")

	// ErrPadExists indicates a pad already exists for the given handle.
	ErrPadExists = errors.New("pad: pad already exists for handle")

	// ErrInvalidHandle indicates the handle contains characters outside
	// [A-Za-z0-9._-] or is empty.
	ErrInvalidHandle = errors.New("pad: invalid pad handle")

	// ErrCommitFailed indicates an offset advance could not be persisted.
	// The durable state and the in-memory offset both retain their
	// pre-commit values; no pad bytes were consumed.
	ErrCommitFailed = errors.New("pad: commit not persisted, offset unchanged")

	// ErrIOFailure indicates a file read/write error.
	ErrIOFailure = errors.New("pad: I/O failure")
)
