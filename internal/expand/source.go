package expand

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/gen"
	"hellomacro/internal/lexer"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// ExpandSource lexes src as a standalone declaration and expands it.
// Lexical errors are returned as the site diagnostic.
func ExpandSource(name, src string, cfg Config) (token.Stream, *diag.Diagnostic) {
	fs := cfg.Files
	if fs == nil {
		fs = source.NewFileSet()
		cfg.Files = fs
	}
	file := fs.Get(fs.AddVirtual(name, []byte(src)))

	bag := diag.NewBag(16)
	input := lexer.Stream(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	site := Site{Span: input.Span(), Label: name}
	if bag.HasErrors() {
		first := bag.Items()[0]
		d := diag.NewError(first.Code, site.Span, "cannot derive "+gen.TraitName+": "+first.Message)
		if first.Primary != site.Span {
			d = d.WithNote(first.Primary, "invalid token here")
		}
		return token.Stream{}, &d
	}
	return Expand(site, input, cfg)
}
