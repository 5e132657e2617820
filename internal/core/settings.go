package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/jo-hoe/docucloud/internal/cloud"
)

// Form field names of a submission.
const (
	FieldFile                = "file"
	FieldWidth               = "width"
	FieldHeight              = "height"
	FieldUseStopwords        = "use_stopwords"
	FieldAdditionalStopwords = "additional_stopwords"
	FieldFormat              = "format"
	FieldResolution          = "resolution"
)

// Settings are the per-request rendering options.
type Settings struct {
	Width               int          `validate:"min=1"`
	Height              int          `validate:"min=1"`
	Resolution          int          `validate:"min=1"`
	Format              cloud.Format `validate:"required"`
	UseStopwords        bool
	AdditionalStopwords []string
}

// Stopwords returns the stopword set these settings select.
func (s *Settings) Stopwords() cloud.Stopwords {
	return cloud.BuildStopwords(s.UseStopwords, s.AdditionalStopwords)
}

// DefaultSettings returns the settings used for an empty form.
func (c *ServiceConfig) DefaultSettings() *Settings {
	format, err := cloud.ParseFormat(c.Defaults.Format)
	if err != nil {
		format = cloud.PNG
	}
	return &Settings{
		Width:      c.Defaults.Width,
		Height:     c.Defaults.Height,
		Resolution: c.Defaults.Resolution,
		Format:     format,
	}
}

var settingsValidator = validator.New()

// ParseSettings reads the settings fields through formValue. Absent or empty
// numeric fields fall back to the configured defaults; non-numeric values fail
// with ErrBadNumericInput and out-of-range values with ErrInvalidSettings.
func (c *ServiceConfig) ParseSettings(formValue func(name string) string) (*Settings, error) {
	settings := c.DefaultSettings()

	var err error
	if settings.Width, err = parseIntField(formValue, FieldWidth, settings.Width); err != nil {
		return nil, err
	}
	if settings.Height, err = parseIntField(formValue, FieldHeight, settings.Height); err != nil {
		return nil, err
	}
	if settings.Resolution, err = parseIntField(formValue, FieldResolution, settings.Resolution); err != nil {
		return nil, err
	}

	if raw := strings.TrimSpace(formValue(FieldFormat)); raw != "" {
		format, err := cloud.ParseFormat(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, raw)
		}
		settings.Format = format
	}

	settings.UseStopwords = formValue(FieldUseStopwords) == "on"
	settings.AdditionalStopwords = cloud.SplitList(formValue(FieldAdditionalStopwords))

	if err := c.validateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (c *ServiceConfig) validateSettings(s *Settings) error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	bounds := []struct {
		field string
		value int
		max   int
	}{
		{FieldWidth, s.Width, c.Limits.MaxWidth},
		{FieldHeight, s.Height, c.Limits.MaxHeight},
		{FieldResolution, s.Resolution, c.Limits.MaxResolution},
	}
	for _, b := range bounds {
		if err := settingsValidator.Var(b.value, fmt.Sprintf("max=%d", b.max)); err != nil {
			return fmt.Errorf("%w: %s must be at most %d, got %d", ErrInvalidSettings, b.field, b.max, b.value)
		}
	}

	w, h := cloud.OutputSize(s.Width, s.Height, s.Resolution)
	if err := settingsValidator.Var(w*h, fmt.Sprintf("max=%d", c.Limits.MaxPixels)); err != nil {
		return fmt.Errorf("%w: output of %dx%d pixels exceeds the limit of %d pixels", ErrInvalidSettings, w, h, c.Limits.MaxPixels)
	}
	return nil
}

func parseIntField(formValue func(string) string, field string, fallback int) (int, error) {
	raw := strings.TrimSpace(formValue(field))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrBadNumericInput, field, raw)
	}
	return v, nil
}
