package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrRootNotDirectory indicates the scan root is missing or is not a directory.
var ErrRootNotDirectory = errors.New("scan root is not a directory")

// File is a regular file discovered under the scan root.
type File struct {
	Path    string // Absolute path as walked
	RelPath string // Slash-separated path relative to the root
	Target  string // Resolved target when Path is a symlink, empty otherwise
}

// Walk returns every regular file under root, recursively.
//
// Entries are visited in lexical order within each directory, so the result
// is deterministic for a given tree. Symlinks resolving to regular files are
// included with Target set; symlinked directories are not descended, which
// rules out cycles. Unreadable sub-directories are logged and skipped.
func Walk(root string, logger *zap.Logger) ([]File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
	}

	var files []File
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		f, ok := classifyEntry(absRoot, path, d, logger)
		if ok {
			files = append(files, f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ResolveRoot returns the absolute, symlink-free form of root. Walk and
// Filter both use it so that resolved symlink targets compare against the
// same prefix as walked paths.
func ResolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	if real, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = real
	}
	return absRoot, nil
}

// classifyEntry turns a non-directory entry into a File when it is a regular
// file or a symlink to one.
func classifyEntry(root, path string, d fs.DirEntry, logger *zap.Logger) (File, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return File{}, false
	}
	f := File{Path: path, RelPath: filepath.ToSlash(rel)}

	switch {
	case d.Type().IsRegular():
		return f, true
	case d.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(path)
		if err != nil {
			logger.Debug("skipping dangling symlink", zap.String("path", path), zap.Error(err))
			return File{}, false
		}
		if !info.Mode().IsRegular() {
			return File{}, false
		}
		target, err := filepath.EvalSymlinks(path)
		if err != nil {
			logger.Debug("skipping unresolvable symlink", zap.String("path", path), zap.Error(err))
			return File{}, false
		}
		f.Target = target
		return f, true
	default:
		return File{}, false
	}
}
