package assets

import (
	"fmt"
	"path"
	"strings"
)

// Built-in asset names.
const (
	DefaultStyleName     = "default"
	DocumentTemplateName = "document"
)

// AssetLoader loads stylesheets and templates by bare name. Missing assets
// fail with ErrStyleNotFound or ErrTemplateNotFound, malformed names with
// ErrInvalidAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kind describes where assets of one sort live and how a miss is reported.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// file returns the slash-separated path of name relative to an asset root.
func (k kind) file(name string) string {
	return path.Join(k.dir, name+k.ext)
}

func (k kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}

// ValidateAssetName rejects empty names and names carrying separators, dots
// or NUL bytes, so a name always maps to exactly one file in its directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
