package expand_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellomacro/internal/diag"
	"hellomacro/internal/expand"
	"hellomacro/internal/lexer"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

func lexInput(t *testing.T, fs *source.FileSet, name, src string) token.Stream {
	t.Helper()
	return lexer.Stream(fs.Get(fs.AddVirtual(name, []byte(src))), lexer.Options{})
}

func TestExpandNameFidelity(t *testing.T) {
	out, d := expand.ExpandSource("cat.rs", "#[derive(HelloMacro)]\nstruct Cat;", expand.Config{})
	require.Nil(t, d)
	text := string(out.File().Content)
	assert.Contains(t, text, "impl HelloMacro for Cat {")
	assert.Contains(t, text, `println!("{}", "Hello, Macro! I'm a Cat!");`)
}

func TestExpandGenericPreservation(t *testing.T) {
	out, d := expand.ExpandSource("w.rs", "struct Wrapper<T: Clone> { inner: T }", expand.Config{})
	require.Nil(t, d)
	header := strings.SplitN(string(out.File().Content), "\n", 2)[0]
	assert.Equal(t, "impl<T: Clone> HelloMacro for Wrapper<T> {", header)
}

func TestExpandAbsolutePathBounds(t *testing.T) {
	tests := []struct {
		src    string
		header string
	}{
		{"struct S<T: ::core::fmt::Debug>(T);", "impl<T: ::core::fmt::Debug> HelloMacro for S<T> {"},
		{"struct S<T>(T) where T: ::core::fmt::Debug;", "impl<T> HelloMacro for S<T> where T: ::core::fmt::Debug {"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			out, d := expand.ExpandSource("s.rs", tt.src, expand.Config{})
			require.Nil(t, d)
			header := strings.SplitN(string(out.File().Content), "\n", 2)[0]
			assert.Equal(t, tt.header, header)

			// `T: ::core` должен остаться `:` `::`, а не `::` `:`
			toks := out.Tokens()
			found := false
			for i := 2; i < len(toks); i++ {
				if toks[i].IsIdentText("core") {
					found = true
					assert.Equal(t, token.ColonColon, toks[i-1].Kind)
					assert.Equal(t, token.Colon, toks[i-2].Kind)
				}
			}
			assert.True(t, found)
		})
	}
}

func TestExpandOverride(t *testing.T) {
	out, d := expand.ExpandSource("u.rs", "struct User;", expand.Config{Message: "欢迎 {name}", Set: true})
	require.Nil(t, d)
	assert.Contains(t, out.Text(), `"欢迎 User"`)

	out, d = expand.ExpandSource("u.rs", `#[hello_macro(message = "欢迎 {name}")] struct User;`, expand.Config{})
	require.Nil(t, d)
	assert.Contains(t, out.Text(), `"欢迎 User"`)
}

func TestExpandRejectsFunction(t *testing.T) {
	fs := source.NewFileSet()
	in := lexInput(t, fs, "f.rs", "fn main() {}")
	site := expand.Site{Span: in.At(0).Span, Label: "f.rs"}
	out, d := expand.Expand(site, in, expand.Config{Files: fs})
	require.NotNil(t, d)
	assert.True(t, out.IsEmpty())
	assert.Equal(t, diag.SynUnsupportedItem, d.Code)
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Equal(t, site.Span, d.Primary)
	assert.Contains(t, d.Message, "cannot derive HelloMacro")
	// ошибка указывает на сам `fn`, совпадающий с site: без заметки
	assert.Empty(t, d.Notes)
}

func TestExpandDiagnosticNotes(t *testing.T) {
	fs := source.NewFileSet()
	in := lexInput(t, fs, "e.rs", "#[derive(HelloMacro)]\nenum E {\n    A B,\n}")
	site := expand.Site{Span: in.At(4).Span}
	_, d := expand.Expand(site, in, expand.Config{Files: fs})
	require.NotNil(t, d)

	got := diag.FormatShortDiagnostics([]diag.Diagnostic{*d}, fs, true)
	want := strings.Join([]string{
		"error SYN2001 e.rs:1:10 cannot derive HelloMacro: expected `,` after variant `A`, found identifier `B`",
		"note SYN2001 e.rs:3:7 declaration rejected here",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestExpandTemplateDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	in := lexInput(t, fs, "t.rs", `#[hello_macro(message = "{nope}")]`+"\nstruct T;")
	r := expand.Run(expand.Site{Span: in.At(2).Span}, in, expand.Config{Files: fs})
	require.True(t, r.Failed)
	require.NotNil(t, r.Diag)
	assert.Equal(t, expand.StageExtracted, r.Stage)
	assert.Equal(t, diag.TplUnknownPlaceholder, r.Diag.Code)
	require.Len(t, r.Diag.Notes, 1)
	assert.Equal(t, `"{nope}"`, string(fs.Get(r.Diag.Notes[0].Span.File).Slice(r.Diag.Notes[0].Span)))
}

func TestRunStages(t *testing.T) {
	fs := source.NewFileSet()
	ok := expand.Run(expand.Site{}, lexInput(t, fs, "a.rs", "struct A;"), expand.Config{Files: fs})
	assert.False(t, ok.Failed)
	assert.Nil(t, ok.Diag)
	assert.Equal(t, expand.StageCompleted, ok.Stage)
	assert.Equal(t, "A", ok.Signature.Name)

	bad := expand.Run(expand.Site{}, lexInput(t, fs, "b.rs", "mod m {}"), expand.Config{Files: fs})
	assert.True(t, bad.Failed)
	assert.Equal(t, expand.StageReceived, bad.Stage)
	assert.True(t, bad.Output.IsEmpty())
	assert.Equal(t, "received", bad.Stage.String())
	assert.Equal(t, "Stage(9)", expand.Stage(9).String())
}

func TestExpandEmptyInput(t *testing.T) {
	_, d := expand.Expand(expand.Site{}, token.Stream{}, expand.Config{})
	require.NotNil(t, d)
	assert.Equal(t, diag.SynEmptyInput, d.Code)
}

func TestExpandSourceLexError(t *testing.T) {
	out, d := expand.ExpandSource("x.rs", "struct A { s: \"open }", expand.Config{})
	require.NotNil(t, d)
	assert.True(t, out.IsEmpty())
	assert.Equal(t, diag.LexUnterminatedString, d.Code)
	require.Len(t, d.Notes, 1)
}

func TestExpandIsolation(t *testing.T) {
	fs := source.NewFileSet()
	bad := lexInput(t, fs, "bad.rs", "struct Broken<T { x: T }")
	good := lexInput(t, fs, "good.rs", "struct Fine;")

	_, d := expand.Expand(expand.Site{Span: bad.Span()}, bad, expand.Config{Files: fs})
	require.NotNil(t, d)
	assert.Equal(t, bad.Span().File, d.Primary.File)

	out, d := expand.Expand(expand.Site{Span: good.Span()}, good, expand.Config{Files: fs})
	require.Nil(t, d)
	assert.Contains(t, out.Text(), "I'm a Fine!")
}

func TestExpandDeterministic(t *testing.T) {
	inputs := []string{
		"struct Pair<'a, T: Clone + 'a, const N: usize>(&'a [T; N]) where T: Default;",
		"fn nope() {}",
		`#[hello_macro(message = "{bad")] struct X;`,
	}
	for _, src := range inputs {
		out1, d1 := expand.ExpandSource("d.rs", src, expand.Config{})
		out2, d2 := expand.ExpandSource("d.rs", src, expand.Config{})
		assert.Equal(t, out1.Text(), out2.Text(), src)
		assert.True(t, out1.Equal(out2), src)
		assert.Equal(t, d1, d2, src)
	}
}

func TestExpandOutputUnmodified(t *testing.T) {
	fs := source.NewFileSet()
	in := lexInput(t, fs, "a.rs", "pub enum Color { Red, Green }")
	out, d := expand.Expand(expand.Site{}, in, expand.Config{Files: fs})
	require.Nil(t, d)
	gen := fs.Get(out.Span().File)
	require.NotNil(t, gen)
	assert.True(t, gen.Flags&source.FileGenerated != 0)
	assert.Equal(t, strings.TrimSuffix(string(gen.Content), "\n"), out.Text())
}

func TestToDiagnosticUnknownError(t *testing.T) {
	d := expand.ToDiagnostic(expand.Site{}, errors.New("boom"))
	assert.Equal(t, diag.ExpPanic, d.Code)
	assert.Contains(t, d.Message, "boom")
}
