package cloud

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// prepareFont returns a path to a usable TrueType font file. The layout library
// loads faces from disk, so the embedded Go Regular font is written to a
// temporary file when no font file is configured. The returned cleanup removes it.
func prepareFont(fontFile string) (string, func() error, error) {
	noop := func() error { return nil }

	if fontFile != "" {
		data, err := os.ReadFile(fontFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read font file %s: %w", fontFile, err)
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			return "", nil, fmt.Errorf("failed to parse font file %s: %w", fontFile, err)
		}
		slog.Info("cloud: using configured font", "path", fontFile, "name", parsed.Name(truetype.NameIDFontFullName))
		return fontFile, noop, nil
	}

	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}

	f, err := os.CreateTemp("", "docucloud-font-*.ttf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create font file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(goregular.TTF); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("failed to write font file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("failed to close font file: %w", err)
	}

	slog.Debug("cloud: embedded font written", "path", path, "name", parsed.Name(truetype.NameIDFontFullName))
	return path, func() error { return os.Remove(path) }, nil
}
