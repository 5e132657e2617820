package common

import (
	"errors"
	"net/http"

	"github.com/jo-hoe/docucloud/internal/core"
)

// StatusForError maps a submission error onto an HTTP status and a user facing message.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, core.ErrUnsupportedFormat):
		return http.StatusBadRequest, "Unsupported file format"
	case errors.Is(err, core.ErrMissingFile):
		return http.StatusBadRequest, "No file uploaded"
	case errors.Is(err, core.ErrBadNumericInput), errors.Is(err, core.ErrInvalidSettings):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrUnsupportedImageFormat):
		return http.StatusBadRequest, "Unsupported image format"
	case errors.Is(err, core.ErrExtraction):
		return http.StatusInternalServerError, "Failed to extract text from the uploaded file"
	case errors.Is(err, core.ErrEmptyContent):
		return http.StatusInternalServerError, "The uploaded file contains no words to render"
	default:
		return http.StatusInternalServerError, "Failed to generate word cloud"
	}
}
