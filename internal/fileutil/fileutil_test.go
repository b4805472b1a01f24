package fileutil_test

// Notes:
// - Write and close failures inside fill are not provoked: that needs a full
//   or read-only filesystem, which is platform-specific
// - TestWriteTempFile_BadTempDir changes TMPDIR and cannot run in parallel

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-src2pdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Temp file name safety
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		wantErr error
	}{
		{"html", nil},
		{"tar.gz", nil},
		{"", fileutil.ErrExtensionEmpty},
		{"../html", fileutil.ErrExtensionInvalid},
		{`..\html`, fileutil.ErrExtensionInvalid},
		{"ht\x00ml", fileutil.ErrExtensionInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()

			if err := fileutil.ValidateExtension(tt.ext); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Browser hand-off files
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("writes content with extension", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := fileutil.WriteTempFile("<p>hé</p>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile() error = %v", err)
		}
		defer cleanup()

		if filepath.Ext(path) != ".html" {
			t.Errorf("path %q should end in .html", path)
		}
		if !strings.HasPrefix(filepath.Base(path), "src2pdf-") {
			t.Errorf("path %q should carry the src2pdf- prefix", path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "<p>hé</p>" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("cleanup removes the file", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := fileutil.WriteTempFile("x", "html")
		if err != nil {
			t.Fatal(err)
		}
		cleanup()
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file still present after cleanup: %v", err)
		}
	})

	t.Run("rejects unsafe extension", func(t *testing.T) {
		t.Parallel()

		_, cleanup, err := fileutil.WriteTempFile("x", "../x")
		if !errors.Is(err, fileutil.ErrExtensionInvalid) {
			t.Errorf("error = %v, want ErrExtensionInvalid", err)
		}
		if cleanup != nil {
			t.Error("cleanup should be nil on error")
		}
	})
}

func TestWriteTempFile_BadTempDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR is not consulted on Windows")
	}
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

	_, _, err := fileutil.WriteTempFile("x", "html")
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("WriteTempFile() error = %v, want creating temp file failure", err)
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Replace-or-keep output writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("new file with permissions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.pdf")
		if err := fileutil.WriteFileAtomic(path, []byte("%PDF"), 0o600); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("replaces existing file without leftovers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.pdf")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
		entries, _ := os.ReadDir(dir)
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want only the output", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "no", "doc.pdf")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Error("WriteFileAtomic() expected error for missing directory")
		}
	})
}

// ---------------------------------------------------------------------------
// TestExists - File and directory probes
// ---------------------------------------------------------------------------

func TestExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name     string
		path     string
		wantFile bool
		wantDir  bool
	}{
		{"regular file", file, true, false},
		{"directory", dir, false, true},
		{"missing", missing, false, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists() = %v, want %v", got, tt.wantFile)
			}
			if got := fileutil.DirExists(tt.path); got != tt.wantDir {
				t.Errorf("DirExists() = %v, want %v", got, tt.wantDir)
			}
		})
	}

	if runtime.GOOS != "windows" {
		t.Run("symlink to directory", func(t *testing.T) {
			t.Parallel()

			link := filepath.Join(t.TempDir(), "link")
			if err := os.Symlink(dir, link); err != nil {
				t.Skipf("symlink unsupported: %v", err)
			}
			if !fileutil.DirExists(link) {
				t.Error("DirExists() should follow symlinks")
			}
		})
	}
}
