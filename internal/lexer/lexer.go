package lexer

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	hold   []token.Trivia
	errors int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Stream lexes the whole file into an immutable token stream.
// Lexical errors go to opts.Reporter; the offending bytes become Invalid tokens.
func Stream(file *source.File, opts Options) token.Stream {
	lx := New(file, opts)
	var toks []token.Token
	for {
		t := lx.Next()
		if t.Kind == token.EOF {
			break
		}
		toks = append(toks, t)
	}
	return token.NewStream(file, toks)
}

// Errors returns the number of lexical errors reported so far.
func (lx *Lexer) Errors() int { return lx.errors }

// Next возвращает следующий значимый токен с собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	start := lx.cursor.Mark()
	var tok token.Token
	ch := lx.cursor.Peek()
	switch {
	case ch == 'r' && lx.rawStringAhead(1):
		tok = lx.scanRawString(start)
	case ch == 'r' && lx.cursor.PeekAt(1) == '#' && isIdentStartByte(lx.cursor.PeekAt(2)):
		tok = lx.scanRawIdent()
	case ch == 'b' && lx.cursor.PeekAt(1) == '"':
		lx.cursor.Bump()
		tok = lx.scanString(start)
	case ch == 'b' && lx.cursor.PeekAt(1) == '\'':
		lx.cursor.Bump()
		tok = lx.scanQuote(start)
	case ch == 'b' && lx.cursor.PeekAt(1) == 'r' && lx.rawStringAhead(2):
		lx.cursor.Bump()
		tok = lx.scanRawString(start)
	case ch == '_' && !isIdentContinueByte(lx.cursor.PeekAt(1)):
		tok = lx.scanOperatorOrPunct()
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString(start)
	case ch == '\'':
		tok = lx.scanQuote(start)
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds maximum length")
		lx.cursor.SkipToEnd()
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}
