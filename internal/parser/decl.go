package parser

import (
	"fmt"

	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// parseDecl: OuterAttr* Visibility? (Struct | Enum | Union).
func (p *Parser) parseDecl() (*ast.Decl, bool) {
	d := &ast.Decl{Tokens: p.in, Span: p.in.Span()}
	var ok bool
	if d.Attrs, ok = p.parseOuterAttrs(); !ok {
		return nil, false
	}
	if d.Vis, ok = p.parseVisibility(); !ok {
		return nil, false
	}

	tok := p.peek()
	switch {
	case tok.Kind == token.KwStruct:
		d.Kind = ast.DeclStruct
	case tok.Kind == token.KwEnum:
		d.Kind = ast.DeclEnum
	case tok.IsIdentText("union") && p.peekN(1).Kind == token.Ident:
		d.Kind = ast.DeclUnion
	case tok.Kind == token.EOF:
		p.failHere(diag.SynUnsupportedItem, "expected `struct`, `enum` or `union` after attributes")
		return nil, false
	case isItemStart(tok):
		p.fail(diag.SynUnsupportedItem, tok.Span,
			fmt.Sprintf("derive(HelloMacro) may only be applied to structs, enums and unions, found `%s` item", tok.Text))
		return nil, false
	default:
		p.failHere(diag.SynUnexpectedToken, "expected `struct`, `enum` or `union`, found "+describe(tok))
		return nil, false
	}
	p.advance()

	name, ok := p.expectIdent(d.Kind.String() + " name")
	if !ok {
		return nil, false
	}
	d.Name, d.NameSpan = name.Text, name.Span

	if d.Generics, ok = p.parseGenerics(); !ok {
		return nil, false
	}

	switch d.Kind {
	case ast.DeclStruct:
		ok = p.parseStructBody(d)
	case ast.DeclEnum:
		ok = p.parseEnumBody(d)
	case ast.DeclUnion:
		ok = p.parseUnionBody(d)
	}
	if !ok {
		return nil, false
	}
	return d, true
}

// isItemStart: токены, с которых начинаются прочие элементы.
func isItemStart(t token.Token) bool {
	switch t.Kind {
	case token.KwFn, token.KwMod, token.KwImpl, token.KwTrait, token.KwUse, token.KwConst,
		token.KwStatic, token.KwType, token.KwExtern, token.KwUnsafe, token.KwAsync, token.KwLet:
		return true
	case token.Ident:
		return t.Text == "macro_rules" || t.Text == "auto"
	}
	return false
}

func (p *Parser) parseVisibility() (ast.Visibility, bool) {
	var v ast.Visibility
	start := p.pos
	switch {
	case p.at(token.KwCrate) && p.peekN(1).Kind != token.ColonColon:
		p.advance()
		v.Kind = ast.VisCrate
	case p.at(token.KwPub):
		p.advance()
		v.Kind = ast.VisPublic
		if p.at(token.LParen) {
			inner, ok := p.group()
			if !ok {
				return v, false
			}
			switch first := inner.At(0); {
			case first.Kind == token.KwCrate && inner.Len() == 1:
				v.Kind = ast.VisCrate
			case (first.Kind == token.KwSelfValue || first.Kind == token.KwSuper) && inner.Len() == 1:
				v.Kind = ast.VisRestricted
			case first.Kind == token.KwIn && inner.Len() > 1:
				v.Kind = ast.VisRestricted
			default:
				p.fail(diag.SynBadVisibility, inner.Span(),
					"expected `crate`, `self`, `super` or `in path` in visibility, found `"+inner.String()+"`")
				return v, false
			}
		}
	default:
		return v, true
	}
	v.Tokens = p.in.Slice(start, p.pos)
	v.Span = v.Tokens.Span()
	return v, true
}

func (p *Parser) parseStructBody(d *ast.Decl) bool {
	switch {
	case p.at(token.LParen):
		d.Shape = ast.ShapeTuple
		inner, ok := p.group()
		if !ok {
			return false
		}
		d.Fields = tupleFields(inner)
		if !p.parseWhere(&d.Generics) {
			return false
		}
		_, ok = p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected `;` after tuple struct")
		return ok
	default:
		if !p.parseWhere(&d.Generics) {
			return false
		}
		if p.eat(token.Semicolon) {
			d.Shape = ast.ShapeUnit
			return true
		}
		if !p.at(token.LBrace) {
			p.failHere(diag.SynUnexpectedToken, "expected `where`, `{`, `(` or `;` after struct name, found "+describe(p.peek()))
			return false
		}
		d.Shape = ast.ShapeNamed
		inner, ok := p.group()
		if !ok {
			return false
		}
		fields, ok := p.namedFields(inner)
		d.Fields = fields
		return ok
	}
}

func (p *Parser) parseUnionBody(d *ast.Decl) bool {
	if !p.parseWhere(&d.Generics) {
		return false
	}
	if !p.at(token.LBrace) {
		p.failHere(diag.SynUnionWithoutFields, "expected `{` with named fields after union name, found "+describe(p.peek()))
		return false
	}
	open := p.peek()
	d.Shape = ast.ShapeNamed
	inner, ok := p.group()
	if !ok {
		return false
	}
	if d.Fields, ok = p.namedFields(inner); !ok {
		return false
	}
	if len(d.Fields) == 0 {
		p.fail(diag.SynUnionWithoutFields, open.Span.Cover(p.lastSpan), "unions require at least one named field")
		return false
	}
	return true
}

func (p *Parser) parseEnumBody(d *ast.Decl) bool {
	if !p.parseWhere(&d.Generics) {
		return false
	}
	if !p.at(token.LBrace) {
		p.failHere(diag.SynUnexpectedToken, "expected `{` after enum name, found "+describe(p.peek()))
		return false
	}
	d.Shape = ast.ShapeNamed
	inner, ok := p.group()
	if !ok {
		return false
	}
	for _, seg := range splitTopLevel(inner) {
		sub := newParser(seg, p.opts)
		v, ok := sub.parseVariant()
		if !ok {
			p.adopt(sub)
			return false
		}
		d.Variants = append(d.Variants, v)
	}
	return true
}

// adopt переносит ошибку вложенного разбора.
func (p *Parser) adopt(sub *Parser) {
	if p.err == nil {
		p.err = sub.err
	}
}

func (p *Parser) parseVariant() (ast.Variant, bool) {
	var v ast.Variant
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return v, false
	}
	v.Attrs = attrs
	name, ok := p.expectIdent("variant name")
	if !ok {
		return v, false
	}
	v.Name, v.Span = name.Text, name.Span
	switch {
	case p.at(token.LParen):
		inner, _ := p.group()
		v.Shape, v.Fields = ast.ShapeTuple, len(splitTopLevel(inner))
	case p.at(token.LBrace):
		inner, _ := p.group()
		v.Shape, v.Fields = ast.ShapeNamed, len(splitTopLevel(inner))
	}
	if p.eat(token.Assign) {
		if disc, _ := p.collectUntil(); disc.IsEmpty() {
			p.failHere(diag.SynUnexpectedToken, "expected discriminant after `=`")
			return v, false
		}
	}
	if !p.at(token.EOF) {
		p.failHere(diag.SynUnexpectedToken, "expected `,` after variant `"+v.Name+"`, found "+describe(p.peek()))
		return v, false
	}
	v.Span = p.in.Span()
	return v, true
}

// namedFields: `attrs vis name: Type` через запятую.
func (p *Parser) namedFields(inner token.Stream) ([]ast.Field, bool) {
	var fields []ast.Field
	for i, seg := range splitTopLevel(inner) {
		sub := newParser(seg, p.opts)
		attrs, ok := sub.parseOuterAttrs()
		if ok {
			_, ok = sub.parseVisibility()
		}
		var name token.Token
		if ok {
			name, ok = sub.expectIdent("field name")
		}
		if ok {
			_, ok = sub.expect(token.Colon, diag.SynUnexpectedToken, "expected `:` after field name")
		}
		if ok && sub.at(token.EOF) {
			sub.failHere(diag.SynUnexpectedToken, "expected type for field `"+name.Text+"`")
			ok = false
		}
		if !ok {
			p.adopt(sub)
			return nil, false
		}
		fields = append(fields, ast.Field{Name: name.Text, Index: i, Span: seg.Span(), Attrs: attrs})
	}
	return fields, true
}

func tupleFields(inner token.Stream) []ast.Field {
	segs := splitTopLevel(inner)
	fields := make([]ast.Field, 0, len(segs))
	for i, seg := range segs {
		fields = append(fields, ast.Field{Name: "", Index: i, Span: seg.Span()})
	}
	return fields
}

// splitTopLevel режет поток по запятым нулевой глубины; пустой хвост после
// завершающей запятой отбрасывается. Группы уже сбалансированы.
// После `=` идёт выражение (дискриминант), там `<` и `>` не скобки.
func splitTopLevel(in token.Stream) []token.Stream {
	var out []token.Stream
	depth, angle, start := 0, 0, 0
	expr := false
	for i := 0; i < in.Len(); i++ {
		switch k := in.At(i).Kind; {
		case k.IsOpen():
			depth++
		case k.IsClose():
			depth--
		case k == token.Assign && depth == 0 && angle == 0:
			expr = true
		case k == token.Lt && depth == 0 && !expr:
			angle++
		case k == token.Gt && depth == 0 && angle > 0 && !expr:
			angle--
		case k == token.Comma && depth == 0 && angle == 0:
			out = append(out, in.Slice(start, i))
			start = i + 1
			expr = false
		}
	}
	if start < in.Len() {
		out = append(out, in.Slice(start, in.Len()))
	}
	return out
}
