package highlight

import (
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolveStyle - Style lookup and aliases
// ---------------------------------------------------------------------------

func TestResolveStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  error
	}{
		{"default alias", "default", "pygments", nil},
		{"chroma style", "monokai", "monokai", nil},
		{"case insensitive", "Monokai", "monokai", nil},
		{"surrounding whitespace", " github ", "github", nil},
		{"unknown style", "no-such-style", "", ErrUnknownStyle},
		{"empty name", "", "", ErrUnknownStyle},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			style, err := ResolveStyle(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveStyle(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveStyle(%q) unexpected error: %v", tt.input, err)
			}
			if style.Name != tt.wantName {
				t.Errorf("ResolveStyle(%q).Name = %q, want %q", tt.input, style.Name, tt.wantName)
			}
		})
	}
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	names := StyleNames()
	joined := "," + strings.Join(names, ",") + ","
	for _, want := range []string{"default", "pygments", "monokai"} {
		if !strings.Contains(joined, ","+want+",") {
			t.Errorf("StyleNames() missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestLexerName - Lexer selection by file name
// ---------------------------------------------------------------------------

func TestLexerName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{"main.go", "Go"},
		{"a.py", "Python"},
		{"noextension", PlainTextLexer},
		{"data.unknownext", PlainTextLexer},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			if got := LexerName(tt.file); got != tt.want {
				t.Errorf("LexerName(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHighlighter_Render - Source rendering
// ---------------------------------------------------------------------------

func TestHighlighter_Render(t *testing.T) {
	t.Parallel()

	h, err := NewHighlighter(Options{Style: "default"})
	if err != nil {
		t.Fatalf("NewHighlighter() unexpected error: %v", err)
	}

	tests := []struct {
		name         string
		file         string
		content      string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "python keywords get token classes",
			file:         "a.py",
			content:      "def hello():\n    return 1\n",
			wantContains: []string{`class="chroma"`, `class="k"`, "hello"},
		},
		{
			name:         "unknown extension falls back to plain text",
			file:         "notes.unknownext",
			content:      "just words",
			wantContains: []string{"just words"},
			wantAbsent:   []string{`class="k"`},
		},
		{
			name:         "html in source is escaped",
			file:         "page.txt",
			content:      "<script>alert(1)</script>",
			wantContains: []string{"&lt;script&gt;"},
			wantAbsent:   []string{"<script>"},
		},
		{
			name:         "surrounding whitespace is stripped",
			file:         "a.txt",
			content:      "\n\n   body   \n\n",
			wantContains: []string{"body"},
			wantAbsent:   []string{"\n\n   body"},
		},
		{
			name:    "empty content",
			file:    "empty.go",
			content: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := h.Render(tt.file, tt.content)
			if err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() missing %q in:\n%s", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("Render() should not contain %q in:\n%s", absent, got)
				}
			}
		})
	}
}

func TestHighlighter_LineNumbers(t *testing.T) {
	t.Parallel()

	with, err := NewHighlighter(Options{Style: "default", LineNumbers: true})
	if err != nil {
		t.Fatal(err)
	}
	without, err := NewHighlighter(Options{Style: "default"})
	if err != nil {
		t.Fatal(err)
	}

	content := "a = 1\nb = 2\n"
	gotWith, _ := with.Render("x.py", content)
	gotWithout, _ := without.Render("x.py", content)

	if !strings.Contains(gotWith, `class="ln"`) {
		t.Errorf("line numbers enabled: missing ln class in:\n%s", gotWith)
	}
	if strings.Contains(gotWithout, `class="ln"`) {
		t.Errorf("line numbers disabled: unexpected ln class in:\n%s", gotWithout)
	}
}

func TestHighlighter_CSS(t *testing.T) {
	t.Parallel()

	h, err := NewHighlighter(Options{Style: "monokai"})
	if err != nil {
		t.Fatal(err)
	}

	css, err := h.CSS()
	if err != nil {
		t.Fatalf("CSS() unexpected error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("CSS() should style the .chroma container, got:\n%s", css)
	}
	if h.Style() != "monokai" {
		t.Errorf("Style() = %q, want %q", h.Style(), "monokai")
	}
}

func TestNewHighlighter_UnknownStyle(t *testing.T) {
	t.Parallel()

	_, err := NewHighlighter(Options{Style: "nope"})
	if !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("NewHighlighter() error = %v, want ErrUnknownStyle", err)
	}
}
