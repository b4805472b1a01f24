package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap"

	src2pdf "github.com/alnah/go-src2pdf"
	"github.com/alnah/go-src2pdf/internal/assets"
	"github.com/alnah/go-src2pdf/internal/config"
	"github.com/alnah/go-src2pdf/internal/fileutil"
	"github.com/alnah/go-src2pdf/internal/highlight"
	"github.com/alnah/go-src2pdf/internal/hints"
)

// CLI errors.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("failed to write output")
)

// outputPerm is the permission of the written PDF and HTML files.
const outputPerm = 0o644

// run loads the config, converts the project and writes the output file.
// Configuration problems stop the run before anything is scanned or written.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment, logger *zap.Logger) error {
	if len(positional) != 1 {
		return fmt.Errorf("%w: expected exactly one project path, got %d", ErrUsage, len(positional))
	}

	cfg, err := config.LoadConfig(flags.config)
	if err != nil {
		return err
	}
	logger.Debug("config loaded",
		zap.String("path", flags.config),
		zap.String("output", cfg.OutputName),
		zap.Strings("exclude_dirs", cfg.ExcludeDirs),
		zap.Strings("exclude_files", cfg.ExcludeFiles))

	root := positional[0]
	if !fileutil.DirExists(root) {
		return fmt.Errorf("%w: %s", src2pdf.ErrNotDirectory, root)
	}

	cwd, err := env.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	outPath := filepath.Join(cwd, cfg.OutputName)

	conv, err := env.NewConverter(
		src2pdf.WithTimeout(flags.timeout),
		src2pdf.WithLogger(logger),
		src2pdf.WithAssetPath(cfg.AssetsDir),
		src2pdf.WithDocumentStyle(cfg.DocumentStyle),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			logger.Debug("closing converter", zap.Error(err))
		}
	}()

	logger.Info("generating documentation", zap.String("root", root))
	input := buildInput(cfg, root)
	input.HTMLOnly = flags.html
	res, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}
	if len(res.Files) == 0 {
		logger.Warn("no files rendered" + hints.ForEmptyDocument())
	}

	kind, data := "PDF", res.PDF
	if flags.html {
		kind, data = "HTML", res.HTML
		outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".html"
	}
	if err := fileutil.WriteFileAtomic(outPath, data, outputPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	printSuccess(env.Stdout, kind, outPath, len(res.Files), len(res.Skipped))
	return nil
}

// buildInput maps the loaded configuration onto a conversion input.
func buildInput(cfg *config.Config, root string) src2pdf.Input {
	input := src2pdf.Input{
		Root:           root,
		ExcludeDirs:    cfg.ExcludeDirs,
		ExcludeFiles:   cfg.ExcludeFiles,
		HighlightStyle: cfg.HighlightStyle,
		LineNumbers:    cfg.LineNumbers,
		RenderMarkdown: cfg.RenderMarkdown,
		Page: &src2pdf.PageSettings{
			Size:        cfg.PageSize,
			Orientation: cfg.PageOrientation,
			MarginCM:    cfg.PageMarginCM,
		},
	}
	if cfg.PageNumbers {
		input.Footer = &src2pdf.Footer{ShowPageNumber: true}
	}
	if cfg.Watermark != "" {
		input.Watermark = &src2pdf.Watermark{
			Text:    cfg.Watermark,
			Color:   src2pdf.DefaultWatermarkColor,
			Opacity: src2pdf.DefaultWatermarkOpacity,
			Angle:   src2pdf.DefaultWatermarkAngle,
		}
	}
	return input
}

// printSuccess reports the absolute output path on stdout.
func printSuccess(w io.Writer, kind, path string, rendered, skipped int) {
	green := color.New(color.FgGreen, color.Bold)
	_, _ = green.Fprint(w, kind+" generated: ")
	fmt.Fprintln(w, path)
	fmt.Fprintf(w, "  %d files rendered, %d skipped\n", rendered, skipped)
}

// printError writes err and any matching hint to w.
func printError(w io.Writer, err error, configPath string) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprint(w, "error: ")
	fmt.Fprintln(w, err.Error()+hintFor(err, configPath))
}

// hintFor returns an actionable hint for well-known failures.
func hintFor(err error, configPath string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configPath)
	case errors.Is(err, src2pdf.ErrUnknownStyle):
		return hints.ForStyleNotFound(highlight.StyleNames())
	case errors.Is(err, src2pdf.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, src2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, src2pdf.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputWrite()
	}
	return ""
}
