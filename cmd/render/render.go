package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jo-hoe/docucloud/internal/core"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	configPath string
	output     string
	width      int
	height     int
	resolution int
	format     string
	stopwords  bool
	extra      string
	top        int
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a word cloud from a .txt, .docx or .pdf file",
		Long: `Render extracts the text of a local document, tallies its words and writes
a word cloud image next to it (or to --output). The frequency table is printed
to stdout. Unset flags fall back to the defaults of the server configuration.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG_PATH"), "config file path (defaults apply when empty)")
	flags.StringVarP(&opts.output, "output", "o", "", "output image path (default <file>-wordcloud.<ext>)")
	flags.IntVar(&opts.width, "width", 0, "canvas width in pixels")
	flags.IntVar(&opts.height, "height", 0, "canvas height in pixels")
	flags.IntVar(&opts.resolution, "resolution", 0, "output resolution in DPI")
	flags.StringVar(&opts.format, "format", "", "image format: png, jpeg, gif, bmp or tiff")
	flags.BoolVar(&opts.stopwords, "stopwords", true, "remove common English stopwords")
	flags.StringVar(&opts.extra, "extra", "", "comma separated additional stopwords")
	flags.IntVar(&opts.top, "top", 20, "number of table rows to print, 0 prints all")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, path string) error {
	config := core.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := core.LoadConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		config = loaded
	}
	// Nothing is uploaded here; keep the service from creating folders in the working directory.
	config.UploadFolder = os.TempDir()

	settings, err := config.ParseSettings(opts.formValues())
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	coreService, err := core.NewCoreService(config)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := coreService.Close(); cerr != nil {
			slog.Error("failed to close core service", "error", cerr)
		}
	}()

	result, err := coreService.Generate(&core.Upload{Filename: filepath.Base(path), Content: content}, settings)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		output = base + "-wordcloud." + result.Image.Format.Extension()
	}
	if err := os.WriteFile(output, result.Image.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s): %d words, %d distinct\n",
		result.Filename, result.Kind, result.Table.Total(), len(result.Table))
	fmt.Fprintf(out, "wrote %s (%dx%d %s)\n\n",
		output, result.Image.Width, result.Image.Height, result.Image.Format)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORD\tCOUNT")
	rows := result.Table
	if opts.top > 0 {
		rows = rows.Top(opts.top)
	}
	for _, entry := range rows {
		fmt.Fprintf(w, "%s\t%d\n", entry.Word, entry.Count)
	}
	return w.Flush()
}

// formValues exposes the flags under the form field names ParseSettings reads.
func (opts *renderOptions) formValues() func(string) string {
	values := map[string]string{
		core.FieldFormat:              opts.format,
		core.FieldAdditionalStopwords: opts.extra,
	}
	if opts.width != 0 {
		values[core.FieldWidth] = strconv.Itoa(opts.width)
	}
	if opts.height != 0 {
		values[core.FieldHeight] = strconv.Itoa(opts.height)
	}
	if opts.resolution != 0 {
		values[core.FieldResolution] = strconv.Itoa(opts.resolution)
	}
	if opts.stopwords {
		values[core.FieldUseStopwords] = "on"
	}
	return func(name string) string {
		return values[name]
	}
}
