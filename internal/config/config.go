package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-src2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigPath = errors.New("config path cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidPattern  = errors.New("invalid exclusion pattern")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "config.json"

// Defaults applied to keys absent from the config file.
const (
	DefaultOutputName      = "project_documentation.pdf"
	DefaultHighlightStyle  = "default"
	DefaultPageSize        = "a4"
	DefaultOrientation     = "portrait"
	DefaultMarginCM        = 1.8
	DefaultDocumentStyle   = "default"
	DefaultLineNumbers     = true
	MinMarginCM            = 0.5
	MaxMarginCM            = 7.5
	MaxOutputNameLength    = 255
	MaxStyleNameLength     = 64
	MaxPatternLength       = 256
	MaxWatermarkTextLength = 50
)

// Config holds everything loaded from config.json.
// A Config is built once by LoadConfig and never mutated afterwards.
type Config struct {
	OutputName      string
	HighlightStyle  string
	ExcludeDirs     []string
	ExcludeFiles    []string
	PageSize        string
	PageOrientation string
	PageMarginCM    float64
	LineNumbers     bool
	PageNumbers     bool
	Watermark       string
	RenderMarkdown  bool
	AssetsDir       string
	DocumentStyle   string
}

// fileConfig mirrors the on-disk keys. Pointers distinguish an absent key
// from an explicit zero value so defaults only fill real gaps.
type fileConfig struct {
	OutputName      *string  `yaml:"output_pdf_name"`
	HighlightStyle  *string  `yaml:"pygments_style"`
	ExcludeDirs     []string `yaml:"exclude_dirs"`
	ExcludeFiles    []string `yaml:"exclude_files"`
	PageSize        *string  `yaml:"page_size"`
	PageOrientation *string  `yaml:"page_orientation"`
	PageMarginCM    *float64 `yaml:"page_margin_cm"`
	LineNumbers     *bool    `yaml:"line_numbers"`
	PageNumbers     *bool    `yaml:"page_numbers"`
	Watermark       *string  `yaml:"watermark"`
	RenderMarkdown  *bool    `yaml:"render_markdown"`
	AssetsDir       *string  `yaml:"assets_dir"`
	DocumentStyle   *string  `yaml:"document_style"`
}

// DefaultConfig returns the configuration used for every absent key.
func DefaultConfig() *Config {
	return &Config{
		OutputName:      DefaultOutputName,
		HighlightStyle:  DefaultHighlightStyle,
		ExcludeDirs:     []string{},
		ExcludeFiles:    []string{},
		PageSize:        DefaultPageSize,
		PageOrientation: DefaultOrientation,
		PageMarginCM:    DefaultMarginCM,
		LineNumbers:     DefaultLineNumbers,
		DocumentStyle:   DefaultDocumentStyle,
	}
}

// LoadConfig reads and validates the config file at path.
// A missing file returns ErrConfigNotFound, unparsable content ErrConfigParse.
// There is no silent fallback to defaults when the file is absent.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}

	f, err := os.Open(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decode(f)
}

// Parse decodes raw config content, applies defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
	return decode(bytes.NewReader(data))
}

func decode(r io.Reader) (*Config, error) {
	var fc fileConfig
	if err := yamlutil.Decode(r, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := DefaultConfig()
	fc.applyTo(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) applyTo(cfg *Config) {
	setString(&cfg.OutputName, fc.OutputName)
	setString(&cfg.HighlightStyle, fc.HighlightStyle)
	setString(&cfg.PageSize, fc.PageSize)
	setString(&cfg.PageOrientation, fc.PageOrientation)
	setString(&cfg.Watermark, fc.Watermark)
	setString(&cfg.AssetsDir, fc.AssetsDir)
	setString(&cfg.DocumentStyle, fc.DocumentStyle)
	if fc.ExcludeDirs != nil {
		cfg.ExcludeDirs = fc.ExcludeDirs
	}
	if fc.ExcludeFiles != nil {
		cfg.ExcludeFiles = fc.ExcludeFiles
	}
	if fc.PageMarginCM != nil {
		cfg.PageMarginCM = *fc.PageMarginCM
	}
	if fc.LineNumbers != nil {
		cfg.LineNumbers = *fc.LineNumbers
	}
	if fc.PageNumbers != nil {
		cfg.PageNumbers = *fc.PageNumbers
	}
	if fc.RenderMarkdown != nil {
		cfg.RenderMarkdown = *fc.RenderMarkdown
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks values that would otherwise fail late, after the whole
// tree has been scanned. Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputName) == "" {
		return fmt.Errorf("%w: output_pdf_name cannot be empty", ErrInvalidValue)
	}
	if err := validateFieldLength("output_pdf_name", c.OutputName, MaxOutputNameLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.OutputName, "/\\\x00") {
		return fmt.Errorf("%w: output_pdf_name %q must be a file name, not a path", ErrInvalidValue, c.OutputName)
	}
	if c.HighlightStyle == "" {
		return fmt.Errorf("%w: pygments_style cannot be empty", ErrInvalidValue)
	}
	if err := validateFieldLength("pygments_style", c.HighlightStyle, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("document_style", c.DocumentStyle, MaxStyleNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("watermark", c.Watermark, MaxWatermarkTextLength); err != nil {
		return err
	}

	if err := validatePatterns("exclude_dirs", c.ExcludeDirs); err != nil {
		return err
	}
	if err := validatePatterns("exclude_files", c.ExcludeFiles); err != nil {
		return err
	}

	switch strings.ToLower(c.PageSize) {
	case "a4", "letter", "legal":
	default:
		return fmt.Errorf("%w: page_size %q (must be a4, letter, or legal)", ErrInvalidValue, c.PageSize)
	}
	switch strings.ToLower(c.PageOrientation) {
	case "portrait", "landscape":
	default:
		return fmt.Errorf("%w: page_orientation %q (must be portrait or landscape)", ErrInvalidValue, c.PageOrientation)
	}
	if c.PageMarginCM < MinMarginCM || c.PageMarginCM > MaxMarginCM {
		return fmt.Errorf("%w: page_margin_cm must be between %.1f and %.1f, got %.2f",
			ErrInvalidValue, MinMarginCM, MaxMarginCM, c.PageMarginCM)
	}

	return nil
}

// validatePatterns rejects patterns with malformed wildcard syntax. Empty
// and multi-segment patterns are accepted; they simply never match.
func validatePatterns(field string, patterns []string) error {
	for i, p := range patterns {
		name := fmt.Sprintf("%s[%d]", field, i)
		if err := validateFieldLength(name, p, MaxPatternLength); err != nil {
			return err
		}
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrInvalidPattern, name, p, err)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
