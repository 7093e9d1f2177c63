package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"hellomacro/internal/diag"
	"hellomacro/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	dir := t.TempDir()
	fileID := fs.Add(dir+"/src/test.rs", []byte("struct A { s: \"unterminated string\n"), 0)
	fs.SetBaseDir(dir)

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 14, End: 34}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, dir + "/src/test.rs"},
		{"Relative path", PathModeRelative, "src/test.rs:1:15:"},
		{"Basename only", PathModeBasename, "test.rs:1:15:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1002:") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("#[derive(HelloMacro)]\npub fn main() {}\n")
	fileID := fs.AddVirtual("main.rs", content)
	bag := diag.NewBag(4)
	d := diag.NewError(diag.SynUnsupportedItem, source.Span{File: fileID, Start: 9, End: 19}, "cannot derive HelloMacro")
	d = d.WithNote(source.Span{File: fileID, Start: 26, End: 28}, "declaration rejected here")
	d = d.WithFix("remove derive", diag.FixEdit{Span: source.Span{File: fileID, Start: 0, End: 22}})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	want := strings.Join([]string{
		"main.rs:1:10: ERROR SYN2011: cannot derive HelloMacro",
		"1 | #[derive(HelloMacro)]",
		"  |          ^~~~~~~~~",
		"  note: main.rs:2:5: declaration rejected here",
		"2 | pub fn main() {}",
		"  |     ^~",
		"  fix #1: remove derive",
		`    main.rs:1:1 apply=""`,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyContextAndColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.rs", []byte("a\nb\nc\nd\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "w"))

	var plain bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{Context: 1})
	for _, line := range []string{"2 | b", "3 | c", "4 | d", "WARNING LEX1001:"} {
		if !strings.Contains(plain.String(), line) {
			t.Errorf("expected %q in:\n%s", line, plain.String())
		}
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("unexpected escape codes without color:\n%q", plain.String())
	}

	var colored bytes.Buffer
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected escape codes with color:\n%q", colored.String())
	}
}

func TestCaretLayout(t *testing.T) {
	tests := []struct {
		line       string
		start, end int
		pad        string
		width      int
	}{
		{"struct A;", 8, 9, "       ", 1},
		{"\tstruct A;", 2, 8, "\t", 6},
		{"名前 X", 8, 9, "     ", 1},
		{"x 欢迎", 3, 9, "  ", 4},
		{"abc", 2, 2, " ", 1},
		{"abc", 10, 12, "   ", 1},
	}
	for _, tt := range tests {
		pad, width := caretLayout(tt.line, tt.start, tt.end)
		if pad != tt.pad || width != tt.width {
			t.Errorf("caretLayout(%q, %d, %d) = %q, %d; want %q, %d", tt.line, tt.start, tt.end, pad, width, tt.pad, tt.width)
		}
	}
}
