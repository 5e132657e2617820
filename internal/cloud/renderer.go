// Package cloud lays out weighted words and rasterizes the result as an encoded image.
package cloud

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/psykhi/wordclouds"
	xdraw "golang.org/x/image/draw"
)

const (
	// BaselineDPI is the resolution at which one layout unit equals one output pixel.
	BaselineDPI = 100

	DefaultMaxWords = 200
)

// ErrEmptyContent is returned when no word survives tokenization and stopword removal.
var ErrEmptyContent = errors.New("no words left to render")

// defaultColors follows the viridis colour ramp.
var defaultColors = []color.Color{
	color.RGBA{68, 1, 84, 255},
	color.RGBA{72, 40, 120, 255},
	color.RGBA{62, 74, 137, 255},
	color.RGBA{49, 104, 142, 255},
	color.RGBA{38, 130, 142, 255},
	color.RGBA{31, 158, 137, 255},
	color.RGBA{53, 183, 121, 255},
	color.RGBA{109, 205, 89, 255},
	color.RGBA{180, 222, 44, 255},
}

// Options configure a Renderer.
type Options struct {
	// FontFile is a TrueType font path; empty selects the embedded Go Regular font.
	FontFile string
	// MaxWords caps the number of placed words; zero means DefaultMaxWords.
	MaxWords int
	Colors   []color.Color
}

// Request describes one cloud to render.
type Request struct {
	Text      string
	Stopwords Stopwords
	Width     int
	Height    int
	Format    Format
	DPI       int
}

// Image is an encoded word cloud.
type Image struct {
	Data   []byte
	Format Format
	Width  int
	Height int
	// Words are the words handed to the layout, with their weights.
	Words map[string]int
}

// DataURI returns the image as an embeddable data URI.
func (i *Image) DataURI() string {
	return DataURI(i.Data, i.Format)
}

// Renderer is safe for concurrent use; each Render call builds its own layout.
type Renderer struct {
	fontPath string
	cleanup  func() error
	maxWords int
	colors   []color.Color
}

// NewRenderer prepares the font and returns a Renderer. Call Close to release it.
func NewRenderer(opts Options) (*Renderer, error) {
	fontPath, cleanup, err := prepareFont(opts.FontFile)
	if err != nil {
		return nil, err
	}

	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = defaultColors
	}

	return &Renderer{
		fontPath: fontPath,
		cleanup:  cleanup,
		maxWords: maxWords,
		colors:   colors,
	}, nil
}

// Close removes any temporary font file.
func (r *Renderer) Close() error {
	return r.cleanup()
}

// Render lays out the most frequent words of req.Text on a Width x Height white
// canvas, scales it to req.DPI and encodes it as req.Format.
func (r *Renderer) Render(req Request) (*Image, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas dimensions: %dx%d", req.Width, req.Height)
	}
	if req.DPI <= 0 {
		return nil, fmt.Errorf("invalid resolution: %d", req.DPI)
	}
	if _, err := ParseFormat(string(req.Format)); err != nil {
		return nil, err
	}

	words := Weights(req.Text, req.Stopwords, r.maxWords)
	if len(words) == 0 {
		return nil, ErrEmptyContent
	}

	slog.Debug("cloud: laying out words",
		"word_count", len(words),
		"width", req.Width,
		"height", req.Height)

	layout, err := r.layout(words, req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	scaled := scaleToResolution(layout, req.DPI)
	data, err := Encode(scaled, req.Format)
	if err != nil {
		return nil, err
	}

	bounds := scaled.Bounds()
	slog.Debug("cloud: render complete",
		"format", string(req.Format),
		"dpi", req.DPI,
		"output_width", bounds.Dx(),
		"output_height", bounds.Dy(),
		"output_size_bytes", len(data))

	return &Image{
		Data:   data,
		Format: req.Format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Words:  words,
	}, nil
}

func (r *Renderer) layout(words map[string]int, width, height int) (img image.Image, err error) {
	// the layout library panics on font and placement failures
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, fmt.Errorf("word cloud layout failed: %v", rec)
		}
	}()

	short := min(width, height)
	maxFont := max(short/4, 12)
	minFont := max(short/80, 8)

	wc := wordclouds.NewWordcloud(words,
		wordclouds.FontFile(r.fontPath),
		wordclouds.Width(width),
		wordclouds.Height(height),
		wordclouds.FontMaxSize(maxFont),
		wordclouds.FontMinSize(minFont),
		wordclouds.Colors(r.colors),
		wordclouds.BackgroundColor(color.RGBA{255, 255, 255, 255}),
		wordclouds.RandomPlacement(false),
	)
	return wc.Draw(), nil
}

// OutputSize returns the pixel dimensions of a width x height canvas rendered at dpi.
func OutputSize(width, height, dpi int) (int, int) {
	scale := float64(dpi) / BaselineDPI
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	return max(w, 1), max(h, 1)
}

func scaleToResolution(src image.Image, dpi int) image.Image {
	bounds := src.Bounds()
	w, h := OutputSize(bounds.Dx(), bounds.Dy(), dpi)
	if w == bounds.Dx() && h == bounds.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)
	return dst
}
