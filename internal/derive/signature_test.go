package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellomacro/internal/ast"
	"hellomacro/internal/derive"
	"hellomacro/internal/lexer"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

func extract(t *testing.T, src string) derive.Signature {
	t.Helper()
	fs := source.NewFileSet()
	in := lexer.Stream(fs.Get(fs.AddVirtual("decl.rs", []byte(src))), lexer.Options{})
	d, err := parser.ParseDecl(in, parser.Options{})
	require.NoError(t, err)
	return derive.Extract(d)
}

func strs(list []token.Stream) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.String())
	}
	return out
}

func TestExtractProjections(t *testing.T) {
	tests := []struct {
		src   string
		bound []string
		bare  []string
		where string
	}{
		{"struct Cat;", []string{}, []string{}, ""},
		{"struct Wrapper<T: Clone>(T);", []string{"T: Clone"}, []string{"T"}, ""},
		{"struct W<T>(T);", []string{"T"}, []string{"T"}, ""},
		{"struct W<T:>(T);", []string{"T"}, []string{"T"}, ""},
		{
			"struct R<'a, 'b: 'a, #[cfg(x)] T: Clone + Default = u8, const N: usize = 3> where T: 'a { r: &'a [T; N] }",
			[]string{"'a", "'b: 'a", "T: Clone + Default", "const N: usize"},
			[]string{"'a", "'b", "T", "N"},
			"T: 'a",
		},
		{"enum E<T: Into<Vec<u8>>> { A(T) }", []string{"T: Into<Vec<u8>>"}, []string{"T"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			sig := extract(t, tt.src)
			assert.Equal(t, tt.bound, strs(sig.Generics.Bound))
			assert.Equal(t, tt.bare, strs(sig.Generics.Bare))
			assert.Equal(t, tt.where, sig.Generics.Where.String())
			assert.Equal(t, tt.where != "", sig.Generics.HasWhere)
			assert.Equal(t, len(sig.Generics.Bound), len(sig.Generics.Bare))
			assert.Equal(t, len(sig.Generics.Bound), sig.Generics.Len())
		})
	}
}

func TestExtractNameKindHelpers(t *testing.T) {
	sig := extract(t, `#[derive(HelloMacro)] #[hello_macro(message = "hi")] #[doc = "x"] union U<T: Copy> { a: T }`)
	assert.Equal(t, "U", sig.Name)
	assert.Equal(t, token.Ident, sig.NameTok.Kind)
	assert.False(t, sig.NameTok.Span.Empty())
	assert.Equal(t, ast.DeclUnion, sig.Kind)
	require.Len(t, sig.Helpers, 1)
	assert.Equal(t, `message = "hi"`, sig.Helpers[0].Args.String())
}

func TestExtractEmptyWhere(t *testing.T) {
	sig := extract(t, "struct S where {}")
	assert.True(t, sig.Generics.HasWhere)
	assert.True(t, sig.Generics.Where.IsEmpty())
}
