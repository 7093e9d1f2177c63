package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"hellomacro/internal/lexer"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

func lexString(t *testing.T, src string) token.Stream {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	return lexer.Stream(file, lexer.Options{})
}

func TestInvariantsHoldOnTestdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "derive", "*.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no testdata found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			s := lexString(t, string(src))
			if err := CheckStreamSpans(s); err != nil {
				t.Fatalf("spans: %v", err)
			}
			if err := CheckBalanced(s); err != nil {
				t.Fatalf("balance: %v", err)
			}
			items, err := parser.Items(s, parser.Options{})
			if err != nil {
				t.Fatalf("items: %v", err)
			}
			if err := CheckItems(s, items); err != nil {
				t.Fatalf("items: %v", err)
			}
		})
	}
}

func TestCheckBalancedReportsMismatch(t *testing.T) {
	cases := map[string]string{
		"unclosed":  "struct S { x: (u8, }",
		"unmatched": "struct S; }",
		"crossed":   "struct S([u8)];",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if err := CheckBalanced(lexString(t, src)); err == nil {
				t.Fatalf("expected imbalance in %q", src)
			}
		})
	}
	if err := CheckBalanced(lexString(t, "struct S { x: [u8; (1)] }")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckStreamSpansRejectsSynthesized(t *testing.T) {
	if err := CheckStreamSpans(token.Of(token.Synth(token.Ident, "x"))); err == nil {
		t.Fatal("expected error for a stream without origin file")
	}
}
