package parser

import (
	"errors"
	"fmt"
	"slices"

	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// ErrParse matches every *Error via errors.Is.
var ErrParse = errors.New("parse error")

// Error is the first problem found in a derive input.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *Error) Is(target error) bool {
	return target == ErrParse
}

type Options struct {
	// Reporter получает ту же ошибку, что возвращает ParseDecl; может быть nil.
	Reporter diag.Reporter
}

// Parser: состояние разбора одного входа.
type Parser struct {
	in       token.Stream
	toks     []token.Token
	pos      int
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	err      *Error
}

func newParser(in token.Stream, opts Options) *Parser {
	return &Parser{
		in:       in,
		toks:     in.Tokens(),
		opts:     opts,
		lastSpan: in.Span().ZeroideToStart(),
	}
}

// ParseDecl parses exactly one struct, enum or union. The whole input must
// be consumed; anything else is an *Error and no Decl is returned.
func ParseDecl(in token.Stream, opts Options) (*ast.Decl, error) {
	p := newParser(in, opts)
	if in.IsEmpty() {
		p.fail(diag.SynEmptyInput, in.Span(), "derive input is empty")
		return nil, p.err
	}
	if i := slices.IndexFunc(p.toks, func(t token.Token) bool { return t.Kind == token.Invalid }); i >= 0 {
		p.fail(diag.SynUnexpectedToken, p.toks[i].Span, fmt.Sprintf("invalid token %q", p.toks[i].Text))
		return nil, p.err
	}

	d, ok := p.parseDecl()
	if !ok {
		return nil, p.err
	}
	if !p.at(token.EOF) {
		p.fail(diag.SynMultipleItems, p.rest().Span(), "expected a single item, found more tokens after `"+d.Name+"`")
		return nil, p.err
	}
	return d, nil
}

func (p *Parser) rest() token.Stream {
	return p.in.Slice(p.pos, len(p.toks))
}
