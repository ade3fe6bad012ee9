package sdif

import "errors"

// Decode-time structural errors poison the Session that surfaced them;
// it must be reopened. Unknown-but-well-formed type tags are never
// errors, only unknown element widths force a frame to stay opaque.
var (
	ErrMalformedHeader   = errors.New("sdif: malformed file header")
	ErrTruncated         = errors.New("sdif: truncated input")
	ErrFrameSizeMismatch = errors.New("sdif: frame size mismatch")
	ErrFrameTooLarge     = errors.New("sdif: frame exceeds size limit")
	ErrMatrixTooLarge    = errors.New("sdif: matrix exceeds size limit")
	ErrTrailingBytes     = errors.New("sdif: trailing bytes in frame")
	ErrWriteFailed       = errors.New("sdif: write failed")
	ErrSessionClosed     = errors.New("sdif: session closed")
	ErrNotReading        = errors.New("sdif: session not open for reading")
	ErrNotWriting        = errors.New("sdif: session not open for writing")

	ErrInvalidSignature  = errors.New("sdif: invalid signature")
	ErrDimensionMismatch = errors.New("sdif: matrix dimension mismatch")
	ErrTypeMismatch      = errors.New("sdif: matrix data type mismatch")
	ErrTimeNotIncreasing = errors.New("sdif: frame time not non-decreasing")
)
