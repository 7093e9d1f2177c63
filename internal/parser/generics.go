package parser

import (
	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// parseGenerics разбирает `<...>` после имени типа.
func (p *Parser) parseGenerics() (ast.Generics, bool) {
	var g ast.Generics
	if !p.at(token.Lt) {
		return g, true
	}
	open := p.advance()
	for !p.at(token.Gt) {
		param, ok := p.parseParam()
		if !ok {
			return g, false
		}
		g.Params = append(g.Params, param)
		if p.eat(token.Comma) {
			continue
		}
		if !p.at(token.Gt) {
			if p.at(token.EOF) {
				p.fail(diag.SynUnclosedDelimiter, open.Span, "unclosed generic parameter list")
			} else {
				p.failHere(diag.SynBadGenericParam, "expected `,` or `>` in generic parameters, found "+describe(p.peek()))
			}
			return g, false
		}
	}
	closeTok := p.advance()
	g.Span = open.Span.Cover(closeTok.Span)
	return g, true
}

func (p *Parser) parseParam() (ast.GenericParam, bool) {
	var gp ast.GenericParam
	start := p.pos
	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return gp, false
	}
	gp.Attrs = attrs

	switch tok := p.peek(); tok.Kind {
	case token.Lifetime:
		gp.Kind = ast.ParamLifetime
		gp.Name = p.advance()
		if p.eat(token.Colon) {
			gp.HasColon = true
			if gp.Bounds, ok = p.collectUntil(token.Comma, token.Gt); !ok {
				return gp, false
			}
		}
		if p.at(token.Assign) {
			p.failHere(diag.SynBadGenericParam, "lifetime parameters cannot have a default")
			return gp, false
		}

	case token.KwConst:
		gp.Kind = ast.ParamConst
		p.advance()
		if gp.Name, ok = p.expectIdent("const parameter name"); !ok {
			return gp, false
		}
		if _, ok = p.expect(token.Colon, diag.SynBadGenericParam, "expected `:` and a type after const parameter"); !ok {
			return gp, false
		}
		gp.HasColon = true
		if gp.ConstType, ok = p.collectUntil(token.Assign, token.Comma, token.Gt); !ok {
			return gp, false
		}
		if gp.ConstType.IsEmpty() {
			p.failHere(diag.SynBadGenericParam, "expected type of const parameter `"+gp.Name.Text+"`")
			return gp, false
		}
		if !p.parseDefault(&gp) {
			return gp, false
		}

	case token.Ident:
		gp.Kind = ast.ParamType
		gp.Name = p.advance()
		if p.eat(token.Colon) {
			gp.HasColon = true
			if gp.Bounds, ok = p.collectUntil(token.Assign, token.Comma, token.Gt); !ok {
				return gp, false
			}
		}
		if !p.parseDefault(&gp) {
			return gp, false
		}

	default:
		p.failHere(diag.SynBadGenericParam, "expected lifetime, type or const parameter, found "+describe(tok))
		return gp, false
	}

	gp.Span = p.in.Slice(start, p.pos).Span()
	return gp, true
}

func (p *Parser) parseDefault(gp *ast.GenericParam) bool {
	if !p.eat(token.Assign) {
		return true
	}
	def, ok := p.collectUntil(token.Comma, token.Gt)
	if !ok {
		return false
	}
	if def.IsEmpty() {
		p.failHere(diag.SynBadGenericParam, "expected default value for `"+gp.Name.Text+"`")
		return false
	}
	gp.Default = def
	return true
}

// parseWhere: `where` и предикаты до `{` или `;` на нулевой глубине.
func (p *Parser) parseWhere(g *ast.Generics) bool {
	if !p.at(token.KwWhere) {
		return true
	}
	kw := p.advance()
	preds, ok := p.collectUntil(token.LBrace, token.Semicolon)
	if !ok {
		return false
	}
	g.HasWhere = true
	g.Where = preds
	g.Span = cover(g.Span, kw.Span)
	if !preds.IsEmpty() {
		g.Span = cover(g.Span, preds.Span())
	}
	return true
}
