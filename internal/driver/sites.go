package driver

import (
	"strings"

	"hellomacro/internal/ast"
	"hellomacro/internal/gen"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// DeriveSite is one item that requests HelloMacro.
type DeriveSite struct {
	// Item is the whole annotated item, attributes included.
	Item parser.Item
	// Path is the span of the `HelloMacro` path inside #[derive(...)].
	Path source.Span
	// Module is the chain of enclosing inline modules.
	Module []string
	// Cfg holds the #[cfg(...)] attributes of the enclosing modules and
	// of the item itself, outermost first.
	Cfg []ast.Attr

	derives []deriveAttr
}

// deriveAttr is a #[derive(...)] attribute that lists HelloMacro at least once.
type deriveAttr struct {
	attr    ast.Attr
	entries []deriveEntry
}

type deriveEntry struct {
	span source.Span
	ours bool
}

// Name returns the item name, or "" when the head is not followed by an identifier.
func (s DeriveSite) Name() string {
	i := s.Item.HeadIndex() + 1
	if i < s.Item.Tokens.Len() && s.Item.Tokens.At(i).Kind == token.Ident {
		return s.Item.Tokens.At(i).Text
	}
	return ""
}

// Label is the module-qualified item name, e.g. "shapes::Circle".
func (s DeriveSite) Label() string {
	name := s.Name()
	if name == "" {
		name = s.Item.Head.Text
	}
	if len(s.Module) == 0 {
		return name
	}
	return strings.Join(s.Module, "::") + "::" + name
}

// FindSites returns the items that derive HelloMacro, descending into
// inline `mod name { ... }` bodies. A malformed module body is returned as
// a *parser.Error together with the sites found before it.
func FindSites(items []parser.Item) ([]DeriveSite, error) {
	return findSites(items, nil, nil)
}

func findSites(items []parser.Item, module []string, outerCfg []ast.Attr) ([]DeriveSite, error) {
	var sites []DeriveSite
	for _, it := range items {
		if it.Inner {
			continue
		}
		cfg := append(append([]ast.Attr(nil), outerCfg...), cfgAttrs(it.Attrs)...)

		if it.Head.Kind == token.KwMod && !it.Body.IsEmpty() {
			name := modName(it)
			inner, err := parser.Items(it.Body, parser.Options{})
			nested, nerr := findSites(inner, append(append([]string(nil), module...), name), cfg)
			sites = append(sites, nested...)
			if err != nil {
				return sites, err
			}
			if nerr != nil {
				return sites, nerr
			}
			continue
		}

		site := DeriveSite{Item: it, Module: module, Cfg: cfg}
		for _, a := range it.Attrs {
			if !a.IsPath("derive") || a.Delim != token.LParen {
				continue
			}
			entries := deriveEntries(a.Args)
			da := deriveAttr{attr: a, entries: entries}
			for _, e := range entries {
				if e.ours && site.Path == (source.Span{}) {
					site.Path = e.span
				}
			}
			if da.has() {
				site.derives = append(site.derives, da)
			}
		}
		if len(site.derives) > 0 {
			sites = append(sites, site)
		}
	}
	return sites, nil
}

func (d deriveAttr) has() bool {
	for _, e := range d.entries {
		if e.ours {
			return true
		}
	}
	return false
}

func cfgAttrs(attrs []ast.Attr) []ast.Attr {
	var out []ast.Attr
	for _, a := range attrs {
		if a.IsPath("cfg") {
			out = append(out, a)
		}
	}
	return out
}

func modName(it parser.Item) string {
	i := it.HeadIndex() + 1
	if i < it.Tokens.Len() {
		return it.Tokens.At(i).Text
	}
	return ""
}

// deriveEntries splits `Debug, serde::Serialize, HelloMacro` at top-level
// commas. An entry is ours when it is a plain path ending in HelloMacro.
func deriveEntries(args token.Stream) []deriveEntry {
	var (
		out   []deriveEntry
		depth int
		start int
	)
	flush := func(end int) {
		part := args.Slice(start, end)
		if !part.IsEmpty() {
			out = append(out, deriveEntry{span: part.Span(), ours: isOurPath(part)})
		}
	}
	for i := 0; i < args.Len(); i++ {
		tok := args.At(i)
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		case tok.Kind == token.Comma && depth == 0:
			flush(i)
			start = i + 1
		}
	}
	flush(args.Len())
	return out
}

func isOurPath(part token.Stream) bool {
	toks := part.Tokens()
	if len(toks) > 0 && toks[0].Kind == token.ColonColon {
		toks = toks[1:]
	}
	if len(toks) == 0 || len(toks)%2 == 0 {
		return false
	}
	for i, t := range toks {
		if i%2 == 1 {
			if t.Kind != token.ColonColon {
				return false
			}
			continue
		}
		if t.Kind != token.Ident && t.Kind != token.KwCrate && t.Kind != token.KwSuper && t.Kind != token.KwSelfValue {
			return false
		}
	}
	return toks[len(toks)-1].IsIdentText(gen.TraitName)
}
