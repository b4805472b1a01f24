package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a directory on disk.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

var _ AssetLoader = (*FilesystemLoader)(nil)

// NewFilesystemLoader opens dir as an asset directory. It fails with
// ErrInvalidBasePath unless dir is a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{root: root}, nil
}

// LoadStyle reads <dir>/styles/<name>.css.
func (l *FilesystemLoader) LoadStyle(name string) (string, error) {
	return l.load(styleKind, name)
}

// LoadTemplate reads <dir>/templates/<name>.html.
func (l *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return l.load(templateKind, name)
}

func (l *FilesystemLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	p := filepath.Join(l.root, filepath.FromSlash(k.file(name)))
	if err := l.contain(p); err != nil {
		return "", err
	}

	data, err := os.ReadFile(p) // #nosec G304 -- name validated, path contained
	switch {
	case os.IsNotExist(err):
		return "", k.missing(name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// contain fails with ErrPathTraversal when p, after resolving symlinks,
// lies outside the asset directory. Missing files pass and fail on read.
func (l *FilesystemLoader) contain(p string) error {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	rel, err := filepath.Rel(l.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, p)
	}
	return nil
}
