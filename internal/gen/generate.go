package gen

import (
	"fmt"

	"hellomacro/internal/derive"
	"hellomacro/internal/diag"
	"hellomacro/internal/lexer"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// Config is the host-supplied message override. A helper attribute on the
// declaration takes priority over it.
type Config struct {
	Message string
	Set     bool
	// Files receives the generated text as a FileGenerated file; a private
	// set is used when nil.
	Files  *source.FileSet
	Layout Options
}

// MessageFor returns the message template that applies to sig and the span
// its errors should point to.
func MessageFor(sig derive.Signature, cfg Config) (string, source.Span, error) {
	ov, err := parseHelpers(sig.Helpers)
	if err != nil {
		return "", source.Span{}, err
	}
	switch {
	case ov.Set:
		return ov.Message, ov.Span, nil
	case cfg.Set:
		return cfg.Message, sig.NameTok.Span, nil
	default:
		return DefaultMessage, sig.NameTok.Span, nil
	}
}

// Generate renders the HelloMacro impl for sig. The result is a standalone
// item lexed from the printed text.
func Generate(sig derive.Signature, cfg Config) (token.Stream, error) {
	tmpl, sp, err := MessageFor(sig, cfg)
	if err != nil {
		return token.Stream{}, err
	}
	msg, err := Render(tmpl, Vars{Name: sig.Name, Kind: sig.Kind.String()}, sp)
	if err != nil {
		return token.Stream{}, err
	}

	text := Print(BuildImpl(sig, msg), cfg.Layout)

	fs := cfg.Files
	if fs == nil {
		fs = source.NewFileSet()
	}
	name := fmt.Sprintf("<derive(%s) for %s>", TraitName, sig.Name)
	file := fs.Get(fs.Add(name, text, source.FileVirtual|source.FileGenerated))

	bag := diag.NewBag(4)
	out := lexer.Stream(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		first := bag.Items()[0]
		return token.Stream{}, templateErr(diag.TplInternal, sp, "generated code does not lex: %s", first.Message)
	}
	return out, nil
}
