package parser

import (
	"fmt"
	"slices"

	"hellomacro/internal/diag"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return token.Token{Kind: token.EOF, Span: p.lastSpan.ZeroideToEnd()}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance съедает следующий токен и обновляет lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		if !tok.Span.Empty() {
			p.lastSpan = tok.Span
		}
	}
	return tok
}

// diagSpan: на EOF указываем на позицию сразу после последнего токена.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF || tok.Span.Empty() {
		return p.lastSpan.ZeroideToEnd()
	}
	return tok.Span
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.failHere(code, fmt.Sprintf("%s, found %s", msg, describe(p.peek())))
	return token.Token{}, false
}

func (p *Parser) expectIdent(what string) (token.Token, bool) {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what)
}

func (p *Parser) failHere(code diag.Code, msg string) {
	p.fail(code, p.diagSpan(), msg)
}

// fail запоминает первую ошибку; последующие игнорируются.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) {
	if p.err != nil {
		return
	}
	p.err = &Error{Code: code, Span: sp, Msg: msg}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

func describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return fmt.Sprintf("identifier `%s`", t.Text)
	default:
		return fmt.Sprintf("`%s`", t.Text)
	}
}

// group съедает сбалансированную группу, начиная с открывающей скобки,
// и возвращает содержимое без скобок.
func (p *Parser) group() (token.Stream, bool) {
	open := p.advance()
	closer := open.Kind.Closer()
	start := p.pos
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			p.fail(diag.SynUnclosedDelimiter, open.Span, fmt.Sprintf("unclosed delimiter `%s`", open.Text))
			return token.Stream{}, false
		case tok.Kind == closer:
			inner := p.in.Slice(start, p.pos)
			p.advance()
			return inner, true
		case tok.Kind.IsOpen():
			if _, ok := p.group(); !ok {
				return token.Stream{}, false
			}
		case tok.Kind.IsClose():
			p.fail(diag.SynUnmatchedDelimiter, tok.Span,
				fmt.Sprintf("mismatched closing delimiter `%s` for `%s`", tok.Text, open.Text))
			return token.Stream{}, false
		default:
			p.advance()
		}
	}
}

// collectUntil собирает токены до stop на нулевой глубине (скобки и `<>`).
// Сам stop-токен не съедается.
func (p *Parser) collectUntil(stop ...token.Kind) (token.Stream, bool) {
	start := p.pos
	angle := 0
	for {
		tok := p.peek()
		if angle == 0 && slices.Contains(stop, tok.Kind) {
			return p.in.Slice(start, p.pos), true
		}
		switch {
		case tok.Kind == token.EOF:
			return p.in.Slice(start, p.pos), true
		case tok.Kind.IsOpen():
			if _, ok := p.group(); !ok {
				return token.Stream{}, false
			}
			continue
		case tok.Kind.IsClose():
			p.fail(diag.SynUnmatchedDelimiter, tok.Span, fmt.Sprintf("unexpected closing delimiter `%s`", tok.Text))
			return token.Stream{}, false
		case tok.Kind == token.Lt:
			angle++
		case tok.Kind == token.Gt:
			if angle > 0 {
				angle--
			}
		}
		p.advance()
	}
}

// cover объединяет спаны, считая нулевой span отсутствующим.
func cover(a, b source.Span) source.Span {
	if a == (source.Span{}) {
		return b
	}
	if b == (source.Span{}) {
		return a
	}
	return a.Cover(b)
}
