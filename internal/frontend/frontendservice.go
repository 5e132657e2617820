package frontend

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jo-hoe/docucloud/internal/cloud"
	"github.com/jo-hoe/docucloud/internal/common"
	"github.com/jo-hoe/docucloud/internal/core"
	"github.com/jo-hoe/docucloud/internal/frequency"
	"github.com/labstack/echo/v4"
)

const (
	MainPageName = "index.html"
	mimeSVG      = "image/svg+xml"
)

// formState echoes the submitted fields back into the form.
type formState struct {
	Width               string
	Height              string
	Resolution          string
	Format              string
	UseStopwords        bool
	AdditionalStopwords string
}

type pageData struct {
	Form         formState
	Formats      []cloud.Format
	Error        string
	Filename     string
	Image        template.URL
	DownloadName string
	Table        frequency.Table
}

type FrontendService struct {
	coreService *core.CoreService
	config      *core.ServiceConfig
}

func NewFrontendService(config *core.ServiceConfig, coreService *core.CoreService) *FrontendService {
	return &FrontendService{
		coreService: coreService,
		config:      config,
	}
}

// SetRoutes registers the form routes; submitMiddleware wraps only the submission route.
func (service *FrontendService) SetRoutes(e *echo.Echo, submitMiddleware ...echo.MiddlewareFunc) {
	e.Renderer = newTemplate()

	e.GET("/", service.indexHandler)
	e.POST("/", service.submitHandler, submitMiddleware...)

	// Favicon (SVG) route
	e.GET("/icon.svg", service.iconHandler)
}

func (service *FrontendService) indexHandler(ctx echo.Context) error {
	return ctx.Render(http.StatusOK, MainPageName, service.newPageData(service.defaultFormState()))
}

func (service *FrontendService) submitHandler(ctx echo.Context) error {
	form := service.submittedFormState(ctx)

	upload, err := readUpload(ctx)
	if err != nil {
		return service.renderError(ctx, form, err)
	}

	settings, err := service.config.ParseSettings(ctx.FormValue)
	if err != nil {
		return service.renderError(ctx, form, err)
	}

	result, err := service.coreService.Generate(upload, settings)
	if err != nil {
		return service.renderError(ctx, form, err)
	}

	slog.Info("submitHandler: word cloud generated",
		"filename", result.Filename,
		"kind", result.Kind.String(),
		"format", string(result.Image.Format),
		"width", result.Image.Width,
		"height", result.Image.Height,
		"distinct_words", len(result.Table))

	data := service.newPageData(form)
	data.Filename = result.Filename
	data.Image = template.URL(result.Image.DataURI())
	data.DownloadName = "wordcloud." + result.Image.Format.Extension()
	data.Table = result.Table
	return ctx.Render(http.StatusOK, MainPageName, data)
}

// renderError answers an unsupported document with a plain-text 400 and
// re-renders the form with a message for every other failure.
func (service *FrontendService) renderError(ctx echo.Context, form formState, err error) error {
	status, message := common.StatusForError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("submitHandler: failed to generate word cloud", "status", status, "error", err)
	} else {
		slog.Warn("submitHandler: rejected submission", "status", status, "error", err)
	}

	if errors.Is(err, core.ErrUnsupportedFormat) {
		return ctx.String(status, message)
	}

	data := service.newPageData(form)
	data.Error = message
	return ctx.Render(status, MainPageName, data)
}

func (service *FrontendService) newPageData(form formState) pageData {
	return pageData{
		Form:    form,
		Formats: cloud.Formats,
	}
}

func (service *FrontendService) defaultFormState() formState {
	d := service.config.Defaults
	return formState{
		Width:      strconv.Itoa(d.Width),
		Height:     strconv.Itoa(d.Height),
		Resolution: strconv.Itoa(d.Resolution),
		Format:     string(service.config.DefaultSettings().Format),
	}
}

func (service *FrontendService) submittedFormState(ctx echo.Context) formState {
	form := service.defaultFormState()
	if v := ctx.FormValue(core.FieldWidth); v != "" {
		form.Width = v
	}
	if v := ctx.FormValue(core.FieldHeight); v != "" {
		form.Height = v
	}
	if v := ctx.FormValue(core.FieldResolution); v != "" {
		form.Resolution = v
	}
	if f, err := cloud.ParseFormat(ctx.FormValue(core.FieldFormat)); err == nil {
		form.Format = string(f)
	}
	form.UseStopwords = ctx.FormValue(core.FieldUseStopwords) == "on"
	form.AdditionalStopwords = ctx.FormValue(core.FieldAdditionalStopwords)
	return form
}

// readUpload loads the multipart file into memory; nothing is written to disk.
func readUpload(ctx echo.Context) (*core.Upload, error) {
	file, err := ctx.FormFile(core.FieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, core.ErrMissingFile
		}
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if file.Filename == "" {
		return nil, core.ErrMissingFile
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", file.Filename, err)
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("readUpload: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", file.Filename, err)
	}
	return &core.Upload{Filename: file.Filename, Content: content}, nil
}

func (service *FrontendService) iconHandler(ctx echo.Context) error {
	data, err := assetsFS.ReadFile("views/icon.svg")
	if err != nil {
		slog.Error("iconHandler: failed to read icon.svg", "status", http.StatusInternalServerError, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to load icon")
	}
	// Cache for 7 days
	ctx.Response().Header().Set("Cache-Control", "public, max-age=604800, immutable")
	return ctx.Blob(http.StatusOK, mimeSVG, data)
}
