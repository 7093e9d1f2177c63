package lexer

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// scanString читает "..." (префикс b уже съеден). Escape-последовательности
// здесь не проверяются: их разбирает token.Unquote там, где значение нужно.
// Перевод строки внутри литерала допустим.
func (lx *Lexer) scanString(start Mark) token.Token {
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// rawStringAhead: с позиции off идут '#'* и '"'.
func (lx *Lexer) rawStringAhead(off uint32) bool {
	for lx.cursor.PeekAt(off) == '#' {
		off++
	}
	return lx.cursor.PeekAt(off) == '"'
}

// scanRawString читает r#"..."# (курсор на 'r').
func (lx *Lexer) scanRawString(start Mark) token.Token {
	lx.cursor.Bump() // r
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			return lx.emit(token.RawStringLit, start)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanQuote различает 'c' / '\n' (CharLit) и 'a (Lifetime).
func (lx *Lexer) scanQuote(start Mark) token.Token {
	lx.cursor.Bump() // '\''
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		lx.bumpRune()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.closeChar(start)
	}

	r, sz := lx.peekRune()
	if sz == 0 {
		return lx.closeChar(start)
	}
	lx.bumpRune()
	if lx.cursor.Peek() == '\'' {
		return lx.closeChar(start)
	}
	if !isIdentStartRune(r) {
		return lx.closeChar(start)
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.Lifetime, start)
}

func (lx *Lexer) closeChar(start Mark) token.Token {
	if lx.cursor.Eat('\'') {
		return lx.emit(token.CharLit, start)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
