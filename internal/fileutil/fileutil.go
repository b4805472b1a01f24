// Package fileutil writes the converter's temporary and final output files.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExtensionEmpty   = errors.New("extension cannot be empty")
	ErrExtensionInvalid = errors.New("extension contains path separator or null byte")
)

// tempPrefix names every temporary file so leftovers are recognizable.
const tempPrefix = "src2pdf-"

// WriteTempFile stores content in a new file of the system temp directory
// named with extension, for handing to the browser by file URL. The caller
// removes it with cleanup.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()
	cleanup = func() { _ = os.Remove(path) }

	if err := fill(f, []byte(content)); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

// WriteFileAtomic stages data in a hidden file beside path and renames it
// into place. An existing file is fully replaced or left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	staged := f.Name()

	if err := fill(f, data); err != nil {
		_ = os.Remove(staged)
		return err
	}
	if err := os.Chmod(staged, perm); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(staged, path); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// fill writes data to f and closes it. f is closed on every path.
func fill(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}

// ValidateExtension rejects extensions that would let a temp file name
// leave the temp directory.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionInvalid
	}
	return nil
}

// FileExists reports whether path names something that is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path resolves, through symlinks, to a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
