package backend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/docucloud/internal/common"
	"github.com/jo-hoe/docucloud/internal/core"
	"github.com/jo-hoe/docucloud/internal/frequency"
	"github.com/labstack/echo/v4"
)

type APIService struct {
	config      *core.ServiceConfig
	coreService *core.CoreService
}

// WordCloudResponse is the JSON body of a successful generation.
type WordCloudResponse struct {
	Filename string          `json:"filename"`
	Kind     string          `json:"kind"`
	Format   string          `json:"format"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Image    string          `json:"image"`
	Words    frequency.Table `json:"words"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type wordCloudQuery struct {
	// Top limits the returned table; zero returns every word.
	Top int `validate:"min=0"`
}

func NewAPIService(config *core.ServiceConfig, coreService *core.CoreService) *APIService {
	return &APIService{
		config:      config,
		coreService: coreService,
	}
}

// SetRoutes registers the API routes; submitMiddleware wraps only the generation route.
func (s *APIService) SetRoutes(e *echo.Echo, submitMiddleware ...echo.MiddlewareFunc) {
	// Set probe route
	e.GET("/probe", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})

	e.POST("/api/wordcloud", s.wordCloudHandler, submitMiddleware...)
}

func (s *APIService) wordCloudHandler(ctx echo.Context) error {
	query := new(wordCloudQuery)
	if err := echo.QueryParamsBinder(ctx).Int("top", &query.Top).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid query parameter: %v", err))
	}
	if err := ctx.Validate(query); err != nil {
		return err
	}

	file, err := ctx.FormFile(core.FieldFile)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return s.errorJSON(ctx, core.ErrMissingFile)
		}
		return s.errorJSON(ctx, fmt.Errorf("failed to read uploaded file: %w", err))
	}

	src, err := file.Open()
	if err != nil {
		return s.errorJSON(ctx, fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Error("wordCloudHandler: failed to close uploaded file reader", "error", cerr, "filename", file.Filename)
		}
	}()
	content, err := io.ReadAll(src)
	if err != nil {
		return s.errorJSON(ctx, fmt.Errorf("failed to read uploaded file: %w", err))
	}

	settings, err := s.config.ParseSettings(ctx.FormValue)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	result, err := s.coreService.Generate(&core.Upload{Filename: file.Filename, Content: content}, settings)
	if err != nil {
		return s.errorJSON(ctx, err)
	}

	words := result.Table
	if query.Top > 0 {
		words = words.Top(query.Top)
	}

	return ctx.JSON(http.StatusOK, WordCloudResponse{
		Filename: result.Filename,
		Kind:     result.Kind.String(),
		Format:   string(result.Image.Format),
		Width:    result.Image.Width,
		Height:   result.Image.Height,
		Image:    result.Image.DataURI(),
		Words:    words,
	})
}

func (s *APIService) errorJSON(ctx echo.Context, err error) error {
	status, message := common.StatusForError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("wordCloudHandler: failed to generate word cloud", "status", status, "error", err)
	} else {
		slog.Warn("wordCloudHandler: rejected request", "status", status, "error", err)
	}
	return ctx.JSON(status, ErrorResponse{Error: message})
}
