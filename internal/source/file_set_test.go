package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.rs", []byte("struct Cat;\nenum Dog {\n    A,\n}\n"))
	f := fs.Get(id)
	if f == nil {
		t.Fatalf("Get(%d) returned nil", id)
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{7, LineCol{1, 8}},
		{11, LineCol{1, 12}}, // '\n' belongs to line 1
		{12, LineCol{2, 1}},
		{17, LineCol{2, 6}},
		{27, LineCol{3, 5}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileSetLatestVersion(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.rs", []byte("struct A;"))
	second := fs.AddVirtual("./a.rs", []byte("struct B;"))
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	got, ok := fs.GetLatest("a.rs")
	if !ok || got != second {
		t.Fatalf("GetLatest = %d,%v want %d", got, ok, second)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d", fs.Len())
	}
	if fs.Get(99) != nil {
		t.Fatalf("unknown id must return nil")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("struct A;\r\nstruct B;\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "struct A;\nstruct B;\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.rs")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("x.rs", []byte("one\ntwo\n\nfour")))
	tests := map[uint32]string{0: "", 1: "one", 2: "two", 3: "", 4: "four", 5: ""}
	for n, want := range tests {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFormatPath(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.Add("src/models/user.rs", nil, 0))
	if got := f.FormatPath("basename", ""); got != "user.rs" {
		t.Fatalf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "src/models/user.rs" {
		t.Fatalf("auto = %q", got)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got := f.FormatPath("relative", wd); got != "src/models/user.rs" {
		t.Fatalf("relative = %q", got)
	}
	v := fs.Get(fs.AddVirtual("<stdin>", nil))
	if got := v.FormatPath("absolute", ""); got != "<stdin>" {
		t.Fatalf("virtual path rewritten: %q", got)
	}
}

func TestFileSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.rs", []byte("pub struct Cat;"))
	f := fs.Get(id)
	if got := string(f.Slice(Span{File: id, Start: 11, End: 14})); got != "Cat" {
		t.Fatalf("Slice = %q", got)
	}
	if got := f.Slice(Span{File: id, Start: 10, End: 100}); string(got) != " Cat;" {
		t.Fatalf("clamped Slice = %q", got)
	}
}
