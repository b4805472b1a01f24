package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrBadPattern indicates an exclusion pattern has malformed wildcard syntax.
var ErrBadPattern = errors.New("malformed exclusion pattern")

// Filter decides whether a discovered file is excluded by pattern.
// It is immutable after construction and safe for concurrent use.
type Filter struct {
	root         string
	dirPatterns  []string
	filePatterns []string
	foldCase     bool
}

// NewFilter creates a Filter for files under root.
//
// dirPatterns are matched against each ancestor directory name of a file,
// relative to root; filePatterns against the file name. Patterns use
// shell wildcard syntax (* ? [...]) and always match one whole path segment.
func NewFilter(root string, dirPatterns, filePatterns []string) (*Filter, error) {
	absRoot, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	for _, p := range append(append([]string{}, dirPatterns...), filePatterns...) {
		if _, err := filepath.Match(p, ""); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
	}

	f := &Filter{
		root:         absRoot,
		dirPatterns:  dirPatterns,
		filePatterns: filePatterns,
		foldCase:     runtime.GOOS == "windows",
	}
	if f.foldCase {
		f.dirPatterns = lowerAll(dirPatterns)
		f.filePatterns = lowerAll(filePatterns)
	}
	return f, nil
}

// Inert returns the configured patterns that can never match a path
// segment: empty patterns and patterns containing a separator.
func (f *Filter) Inert() []string {
	var out []string
	for _, p := range append(append([]string{}, f.dirPatterns...), f.filePatterns...) {
		if IsInert(p) {
			out = append(out, p)
		}
	}
	return out
}

// IsInert reports whether pattern can never match a single path segment.
func IsInert(pattern string) bool {
	if pattern == "" || strings.Contains(pattern, "/") {
		return true
	}
	return runtime.GOOS == "windows" && strings.Contains(pattern, `\`)
}

// Root returns the resolved absolute root the filter was built for.
func (f *Filter) Root() string {
	return f.root
}

// Excluded reports whether the file at path must be left out of the document.
//
// A path is excluded when its file name matches any file pattern, when any
// directory segment between the root and the file matches any directory
// pattern, or when it cannot be expressed relative to the root at all.
func (f *Filter) Excluded(path string) bool {
	if f.matchesAny(f.filePatterns, filepath.Base(path)) {
		return true
	}

	rel, err := filepath.Rel(f.root, path)
	if err != nil || escapesRoot(rel) {
		return true
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, dir := range segments[:len(segments)-1] {
		if f.matchesAny(f.dirPatterns, dir) {
			return true
		}
	}
	return false
}

// ExcludedFile applies Excluded to a walked file and, for symlinks, to the
// resolved target as well.
func (f *Filter) ExcludedFile(file File) bool {
	if f.Excluded(file.Path) {
		return true
	}
	return file.Target != "" && f.Excluded(file.Target)
}

func (f *Filter) matchesAny(patterns []string, segment string) bool {
	if f.foldCase {
		segment = strings.ToLower(segment)
	}
	for _, p := range patterns {
		// Patterns were validated in NewFilter; Match cannot fail here.
		if ok, _ := filepath.Match(p, segment); ok {
			return true
		}
	}
	return false
}

// escapesRoot reports whether a relative path leaves its base directory.
func escapesRoot(rel string) bool {
	return rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}

func lowerAll(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToLower(p)
	}
	return out
}
