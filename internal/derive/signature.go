package derive

import (
	"hellomacro/internal/ast"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// HelperAttr is the name of the attribute that configures the generated impl.
const HelperAttr = "hello_macro"

// Generics holds both projections of a parameter list. Bound and Bare always
// have the same length and order.
type Generics struct {
	Bound    []token.Stream
	Bare     []token.Stream
	Where    token.Stream
	HasWhere bool
}

// Len returns the number of generic parameters.
func (g Generics) Len() int { return len(g.Bound) }

type Signature struct {
	Name     string
	NameTok  token.Token
	Kind     ast.DeclKind
	Generics Generics
	// Helpers are the `#[hello_macro(...)]` attributes in source order.
	Helpers []ast.Attr
	Span    source.Span
}

// Extract projects d into a Signature. d must come from parser.ParseDecl.
func Extract(d *ast.Decl) Signature {
	sig := Signature{
		Name:    d.Name,
		NameTok: token.Token{Kind: token.Ident, Span: d.NameSpan, Text: d.Name},
		Kind:    d.Kind,
		Helpers: d.AttrsNamed(HelperAttr),
		Span:    d.Span,
	}

	n := len(d.Generics.Params)
	sig.Generics.Bound = make([]token.Stream, 0, n)
	sig.Generics.Bare = make([]token.Stream, 0, n)
	for _, p := range d.Generics.Params {
		sig.Generics.Bound = append(sig.Generics.Bound, boundOf(p))
		sig.Generics.Bare = append(sig.Generics.Bare, token.Of(p.Name))
	}
	if d.Generics.HasWhere {
		sig.Generics.HasWhere = true
		sig.Generics.Where = d.Generics.Where
	}
	return sig
}

// boundOf: атрибуты и значения по умолчанию отбрасываются.
func boundOf(p ast.GenericParam) token.Stream {
	name := token.Of(p.Name)
	switch p.Kind {
	case ast.ParamConst:
		return token.Concat(
			token.Of(token.Synth(token.KwConst, ""), p.Name, token.Synth(token.Colon, "")),
			p.ConstType,
		)
	default:
		if p.Bounds.IsEmpty() {
			return name
		}
		return token.Concat(name, token.Of(token.Synth(token.Colon, "")), p.Bounds)
	}
}
