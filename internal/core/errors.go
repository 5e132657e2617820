package core

import "errors"

// Failure kinds of a single submission. Errors returned by CoreService and
// ParseSettings wrap exactly one of these.
var (
	ErrMissingFile            = errors.New("no file uploaded")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrBadNumericInput        = errors.New("bad numeric input")
	ErrInvalidSettings        = errors.New("invalid settings")
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrExtraction             = errors.New("text extraction failed")
	ErrEmptyContent           = errors.New("no words left to render")
)
