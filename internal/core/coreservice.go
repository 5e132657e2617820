package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jo-hoe/docucloud/internal/cloud"
	"github.com/jo-hoe/docucloud/internal/extract"
	"github.com/jo-hoe/docucloud/internal/frequency"
)

// Upload is one submitted file, held in memory for the duration of a request.
type Upload struct {
	Filename string
	Content  []byte
}

// Result is everything derived from a single upload's extracted text.
type Result struct {
	Filename string
	Kind     extract.Kind
	Table    frequency.Table
	Image    *cloud.Image
}

type CoreService struct {
	config   *ServiceConfig
	renderer *cloud.Renderer
}

// NewCoreService ensures the upload folder exists and prepares the renderer.
func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	if err := os.MkdirAll(config.UploadFolder, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload folder %s: %w", config.UploadFolder, err)
	}
	slog.Info("upload folder ready", "path", config.UploadFolder)

	renderer, err := cloud.NewRenderer(cloud.Options{
		FontFile: config.FontFile,
		MaxWords: config.MaxWords,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	return &CoreService{
		config:   config,
		renderer: renderer,
	}, nil
}

// Config returns the service configuration.
func (service *CoreService) Config() *ServiceConfig {
	return service.config
}

// Generate extracts the upload's text, tallies it and renders the cloud.
// Any failing step aborts the whole request.
func (service *CoreService) Generate(upload *Upload, settings *Settings) (*Result, error) {
	if upload == nil || upload.Filename == "" {
		return nil, ErrMissingFile
	}

	kind, err := extract.KindFromFilename(upload.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, upload.Filename)
	}

	text, err := extract.Extract(upload.Content, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	table := frequency.Tally(text)
	slog.Debug("generate: text tallied",
		"filename", upload.Filename,
		"kind", kind.String(),
		"tokens", table.Total(),
		"distinct", len(table))

	image, err := service.renderer.Render(cloud.Request{
		Text:      text,
		Stopwords: settings.Stopwords(),
		Width:     settings.Width,
		Height:    settings.Height,
		Format:    settings.Format,
		DPI:       settings.Resolution,
	})
	if err != nil {
		if errors.Is(err, cloud.ErrEmptyContent) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyContent, upload.Filename)
		}
		return nil, fmt.Errorf("failed to render word cloud: %w", err)
	}

	return &Result{
		Filename: upload.Filename,
		Kind:     kind,
		Table:    table,
		Image:    image,
	}, nil
}

func (service *CoreService) Close() error {
	return service.renderer.Close()
}
