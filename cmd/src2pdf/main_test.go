package main

// Notes:
// - runMain is exercised with an injected Environment: the converter is a
//   mock, so these tests never start a browser
// - run_test.go drives the real converter with --html

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	src2pdf "github.com/alnah/go-src2pdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock converter and environment
// ---------------------------------------------------------------------------

type mockConverter struct {
	input  src2pdf.Input
	result *src2pdf.Result
	err    error
	closed bool
}

func (m *mockConverter) Convert(_ context.Context, input src2pdf.Input) (*src2pdf.Result, error) {
	m.input = input
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &src2pdf.Result{
		HTML:  []byte("<html></html>"),
		PDF:   []byte("%PDF-1.4 mock"),
		Files: []string{"a.py"},
	}, nil
}

func (m *mockConverter) Close() error {
	m.closed = true
	return nil
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
	conv   *mockConverter
	opts   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		dir:    t.TempDir(),
		conv:   &mockConverter{},
	}
	te.Environment = &Environment{
		Context: context.Background(),
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Getwd:   func() (string, error) { return te.dir, nil },
		NewConverter: func(opts ...src2pdf.Option) (Converter, error) {
			te.opts = len(opts)
			return te.conv, nil
		},
	}
	return te
}

// writeConfig writes content as the config file in the env directory.
func (te *testEnv) writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(te.dir, "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes and output
// ---------------------------------------------------------------------------

func TestRunMain_Success(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	cfgPath := te.writeConfig(t, `{"output_pdf_name": "out.pdf"}`)
	project := t.TempDir()

	code := runMain([]string{"src2pdf", "-c", cfgPath, project}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}

	outPath := filepath.Join(te.dir, "out.pdf")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "%PDF-1.4 mock" {
		t.Errorf("output = %q", data)
	}
	if !strings.Contains(te.stdout.String(), outPath) {
		t.Errorf("stdout should report the absolute output path, got %q", te.stdout)
	}
	if !te.conv.closed {
		t.Error("converter should be closed")
	}
	if te.conv.input.Root != project {
		t.Errorf("Root = %q, want %q", te.conv.input.Root, project)
	}
}

func TestRunMain_MissingConfig(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	existing := filepath.Join(te.dir, "project_documentation.pdf")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	code := runMain([]string{"src2pdf", "-c", filepath.Join(te.dir, "missing.json"), t.TempDir()}, te.Environment)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "config file not found") {
		t.Errorf("stderr = %q, want config diagnostic", te.stderr)
	}
	if !strings.Contains(te.stderr.String(), "hint:") {
		t.Error("expected a hint for the missing config")
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "old" {
		t.Error("existing output must not be overwritten")
	}
	if te.opts != 0 {
		t.Error("converter must not be created when config fails")
	}
}

func TestRunMain_ExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     func(te *testEnv, t *testing.T) []string
		convErr  error
		wantCode int
	}{
		{
			name:     "help",
			args:     func(*testEnv, *testing.T) []string { return []string{"src2pdf", "--help"} },
			wantCode: ExitSuccess,
		},
		{
			name:     "version",
			args:     func(*testEnv, *testing.T) []string { return []string{"src2pdf", "--version"} },
			wantCode: ExitSuccess,
		},
		{
			name:     "unknown flag",
			args:     func(*testEnv, *testing.T) []string { return []string{"src2pdf", "--bogus"} },
			wantCode: ExitUsage,
		},
		{
			name: "no project path",
			args: func(te *testEnv, t *testing.T) []string {
				return []string{"src2pdf", "-c", te.writeConfig(t, `{}`)}
			},
			wantCode: ExitUsage,
		},
		{
			name: "project is not a directory",
			args: func(te *testEnv, t *testing.T) []string {
				return []string{"src2pdf", "-c", te.writeConfig(t, `{}`), filepath.Join(te.dir, "nope")}
			},
			wantCode: ExitUsage,
		},
		{
			name: "malformed config",
			args: func(te *testEnv, t *testing.T) []string {
				return []string{"src2pdf", "-c", te.writeConfig(t, `[1, 2]`), te.dir}
			},
			wantCode: ExitUsage,
		},
		{
			name: "browser failure",
			args: func(te *testEnv, t *testing.T) []string {
				return []string{"src2pdf", "-c", te.writeConfig(t, `{}`), te.dir}
			},
			convErr:  src2pdf.ErrBrowserConnect,
			wantCode: ExitBrowser,
		},
		{
			name: "unknown highlight style",
			args: func(te *testEnv, t *testing.T) []string {
				return []string{"src2pdf", "-c", te.writeConfig(t, `{}`), te.dir}
			},
			convErr:  src2pdf.ErrUnknownStyle,
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			te.conv.err = tt.convErr
			code := runMain(tt.args(te, t), te.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d; stderr: %s", code, tt.wantCode, te.stderr)
			}
		})
	}
}

func TestRunMain_HTMLFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	cfgPath := te.writeConfig(t, `{"output_pdf_name": "docs.pdf"}`)

	code := runMain([]string{"src2pdf", "--html", "-q", "-c", cfgPath, t.TempDir()}, te.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	data, err := os.ReadFile(filepath.Join(te.dir, "docs.html"))
	if err != nil {
		t.Fatalf("HTML not written: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("HTML = %q", data)
	}
	if !te.conv.input.HTMLOnly {
		t.Error("--html should request an HTML-only conversion")
	}
	if _, err := os.Stat(filepath.Join(te.dir, "docs.pdf")); !os.IsNotExist(err) {
		t.Error("no PDF should be written with --html")
	}
}
