package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

var _ AssetLoader = (*EmbeddedLoader)(nil)

// NewEmbeddedLoader returns a loader over the built-in assets.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the built-in stylesheet called name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadTemplate returns the built-in HTML template called name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(builtin, k.file(name))
	if err != nil {
		return "", k.missing(name)
	}
	return string(data), nil
}

// StyleNames lists the built-in document stylesheets, sorted.
func StyleNames() []string {
	matches, err := fs.Glob(builtin, styleKind.file("*"))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(m, styleKind.dir+"/"), styleKind.ext))
	}
	sort.Strings(names)
	return names
}
