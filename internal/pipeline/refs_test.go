package pipeline

// Notes:
// - Tests go through Rewrite only; resolveRel and isLocalRef are covered by
//   the observable attribute values

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRefRewriter_Rewrite - Images to file URLs, links to section anchors
// ---------------------------------------------------------------------------

func TestRefRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	root := "/proj"
	if runtime.GOOS == "windows" {
		root = `C:\proj`
	}
	anchors := map[string]string{
		"README.md":   "file-0",
		"docs/api.md": "file-1",
		"src/main.go": "file-2",
	}
	r := NewRefRewriter(root, anchors)

	tests := []struct {
		name         string
		html         string
		relPath      string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "link to sibling document",
			html:         `<a href="docs/api.md">API</a>`,
			relPath:      "README.md",
			wantContains: []string{`href="#file-1"`},
		},
		{
			name:         "link climbing to parent",
			html:         `<a href="../src/main.go#L10">main</a>`,
			relPath:      "docs/api.md",
			wantContains: []string{`href="#file-2"`},
		},
		{
			name:         "link to file outside document",
			html:         `<a href="LICENSE">license</a>`,
			relPath:      "README.md",
			wantContains: []string{`href="LICENSE"`},
		},
		{
			name:         "link escaping root",
			html:         `<a href="../../etc/passwd">x</a>`,
			relPath:      "docs/api.md",
			wantContains: []string{`href="../../etc/passwd"`},
		},
		{
			name:         "external url untouched",
			html:         `<a href="https://example.com/a.md">x</a>`,
			relPath:      "README.md",
			wantContains: []string{`href="https://example.com/a.md"`},
		},
		{
			name:         "in-page anchor scoped to section",
			html:         `<a href="#usage">usage</a>`,
			relPath:      "README.md",
			wantContains: []string{`href="#file-0-usage"`},
		},
		{
			name:         "heading id scoped to section",
			html:         `<h1 id="md-file-1">File 1</h1>`,
			relPath:      "docs/api.md",
			wantContains: []string{`id="file-1-md-file-1"`},
			wantExcludes: []string{`id="md-file-1"`},
		},
		{
			name:         "footnote ids scoped",
			html:         `<sup id="fnref:1"><a href="#fn:1">1</a></sup><li id="fn:1">note</li>`,
			relPath:      "README.md",
			wantContains: []string{`id="file-0-fnref:1"`, `href="#file-0-fn:1"`, `id="file-0-fn:1"`},
		},
		{
			name:         "file without section keeps ids",
			html:         `<h2 id="md-x">x</h2><a href="#md-x">x</a>`,
			relPath:      "notes.md",
			wantContains: []string{`id="md-x"`, `href="#md-x"`},
		},
		{
			name:         "relative image",
			html:         `<img src="img/logo.png">`,
			relPath:      "docs/api.md",
			wantContains: []string{`src="file://`, "docs/img/logo.png"},
		},
		{
			name:         "data image untouched",
			html:         `<img src="data:image/png;base64,AAAA">`,
			relPath:      "README.md",
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "image escaping root untouched",
			html:         `<img src="../../x.png">`,
			relPath:      "README.md",
			wantExcludes: []string{"file://"},
		},
		{
			name:         "text preserved",
			html:         `<p>Hello <em>world</em></p>`,
			relPath:      "README.md",
			wantContains: []string{"<p>Hello <em>world</em></p>"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Rewrite(tt.html, tt.relPath)
			if err != nil {
				t.Fatalf("Rewrite() error = %v", err)
			}
			for _, w := range tt.wantContains {
				if !strings.Contains(got, w) {
					t.Errorf("Rewrite() = %q, want to contain %q", got, w)
				}
			}
			for _, w := range tt.wantExcludes {
				if strings.Contains(got, w) {
					t.Errorf("Rewrite() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}

func TestRefRewriter_ImageUnderRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	r := NewRefRewriter(root, nil)

	got, err := r.Rewrite(`<img src="a.png">`, "README.md")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	want := filepath.ToSlash(filepath.Join(root, "a.png"))
	if !strings.Contains(got, want) {
		t.Errorf("Rewrite() = %q, want path %q", got, want)
	}
}
