package parser

import (
	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// Item is one top-level item of a source file, located without parsing
// its contents.
type Item struct {
	Attrs []ast.Attr
	// Inner is set for a file-level `#![...]` attribute.
	Inner bool
	// Head is the first token after attributes and visibility (`struct`, `fn`, `mod`, ...).
	Head token.Token
	// Tokens is the whole item, attributes included.
	Tokens token.Stream
	// Body holds the contents of `mod name { ... }`.
	Body token.Stream
}

// HeadIndex returns the index of Head inside Tokens.
func (it Item) HeadIndex() int {
	for i := 0; i < it.Tokens.Len(); i++ {
		if it.Tokens.At(i).Span == it.Head.Span && it.Tokens.At(i).Kind == it.Head.Kind {
			return i
		}
	}
	return 0
}

// Items splits a token stream into top-level items. An item ends at `;` on
// depth zero or after its first top-level `{ ... }` group, except for
// `const`, `static`, `type`, `use` and `extern crate`, which always end at `;`.
func Items(in token.Stream, opts Options) ([]Item, error) {
	p := newParser(in, opts)
	var items []Item
	for !p.at(token.EOF) {
		it, ok := p.scanItem()
		if !ok {
			return items, p.err
		}
		items = append(items, it)
	}
	return items, nil
}

func (p *Parser) scanItem() (Item, bool) {
	var it Item
	start := p.pos

	if p.at(token.Pound) && p.peekN(1).Kind == token.Bang {
		p.advance()
		p.advance()
		if !p.at(token.LBracket) {
			p.failHere(diag.SynBadAttribute, "expected `[` after `#!`, found "+describe(p.peek()))
			return it, false
		}
		if _, ok := p.group(); !ok {
			return it, false
		}
		it.Inner = true
		it.Tokens = p.in.Slice(start, p.pos)
		return it, true
	}

	attrs, ok := p.parseOuterAttrs()
	if !ok {
		return it, false
	}
	it.Attrs = attrs
	if _, ok := p.parseVisibility(); !ok {
		return it, false
	}
	it.Head = p.peek()
	if it.Head.Kind == token.EOF {
		p.failHere(diag.SynUnexpectedToken, "expected an item after attributes")
		return it, false
	}
	untilSemi := endsWithSemicolon(it.Head, p.peekN(1))

	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.failHere(diag.SynUnexpectedToken, "expected `;` or `}` to end the item")
			return it, false
		case tok.Kind == token.Semicolon:
			p.advance()
			it.Tokens = p.in.Slice(start, p.pos)
			return it, true
		case tok.Kind == token.LBrace && !untilSemi:
			body, ok := p.group()
			if !ok {
				return it, false
			}
			if it.Head.Kind == token.KwMod {
				it.Body = body
			}
			it.Tokens = p.in.Slice(start, p.pos)
			return it, true
		case tok.Kind.IsOpen():
			if _, ok := p.group(); !ok {
				return it, false
			}
		case tok.Kind.IsClose():
			p.fail(diag.SynUnmatchedDelimiter, tok.Span, "unexpected closing delimiter `"+tok.Text+"`")
			return it, false
		default:
			p.advance()
		}
	}
}

func endsWithSemicolon(head, next token.Token) bool {
	switch head.Kind {
	case token.KwStatic, token.KwType, token.KwUse, token.KwLet:
		return true
	case token.KwConst:
		return next.Kind != token.KwFn && next.Kind != token.KwUnsafe && next.Kind != token.KwAsync && next.Kind != token.KwExtern
	case token.KwExtern:
		return next.Kind == token.KwCrate
	}
	return false
}
