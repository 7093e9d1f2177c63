package parser

import (
	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// parseOuterAttrs читает `#[...]*`. Внутренние атрибуты `#![...]` во входе derive недопустимы.
func (p *Parser) parseOuterAttrs() ([]ast.Attr, bool) {
	var attrs []ast.Attr
	for p.at(token.Pound) {
		a, ok := p.parseAttr()
		if !ok {
			return nil, false
		}
		attrs = append(attrs, a)
	}
	return attrs, true
}

func (p *Parser) parseAttr() (ast.Attr, bool) {
	start := p.pos
	pound := p.advance()
	if p.at(token.Bang) {
		p.fail(diag.SynBadAttribute, pound.Span.Cover(p.peek().Span), "inner attribute is not allowed on a derive input")
		return ast.Attr{}, false
	}
	if !p.at(token.LBracket) {
		p.failHere(diag.SynBadAttribute, "expected `[` after `#`, found "+describe(p.peek()))
		return ast.Attr{}, false
	}
	open := p.advance()

	var a ast.Attr
	p.eat(token.ColonColon)
	for {
		seg := p.peek()
		if seg.Kind != token.Ident && !isPathKeyword(seg.Kind) {
			p.failHere(diag.SynBadAttribute, "expected attribute path, found "+describe(seg))
			return ast.Attr{}, false
		}
		p.advance()
		a.Path = append(a.Path, seg.Text)
		if !p.eat(token.ColonColon) {
			break
		}
	}

	switch {
	case p.peek().Kind.IsOpen():
		a.Delim = p.peek().Kind
		args, ok := p.group()
		if !ok {
			return ast.Attr{}, false
		}
		a.Args = args
	case p.at(token.Assign):
		p.advance()
		a.Delim = token.Assign
		val, ok := p.collectUntil(token.RBracket)
		if !ok {
			return ast.Attr{}, false
		}
		if val.IsEmpty() {
			p.failHere(diag.SynBadAttribute, "expected value after `=` in attribute")
			return ast.Attr{}, false
		}
		a.Args = val
	}

	if !p.at(token.RBracket) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedDelimiter, open.Span, "unclosed attribute `#[`")
		} else {
			p.failHere(diag.SynBadAttribute, "expected `]` to close attribute, found "+describe(p.peek()))
		}
		return ast.Attr{}, false
	}
	p.advance()
	a.Tokens = p.in.Slice(start, p.pos)
	a.Span = a.Tokens.Span()
	return a, true
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func isPathKeyword(k token.Kind) bool {
	return k == token.KwCrate || k == token.KwSelfValue || k == token.KwSuper || k == token.KwSelfType
}

// ParseAttr parses a single `#[...]` stream, e.g. one found by Items.
func ParseAttr(in token.Stream) (ast.Attr, error) {
	p := newParser(in, Options{})
	if !p.at(token.Pound) {
		p.failHere(diag.SynBadAttribute, "expected `#`, found "+describe(p.peek()))
		return ast.Attr{}, p.err
	}
	a, ok := p.parseAttr()
	if !ok {
		return ast.Attr{}, p.err
	}
	if !p.at(token.EOF) {
		p.failHere(diag.SynBadAttribute, "unexpected tokens after attribute")
		return ast.Attr{}, p.err
	}
	return a, nil
}
