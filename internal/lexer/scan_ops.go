package lexer

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

var singleByteOps = [256]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'^': token.Caret, '!': token.Bang, '&': token.Amp, '|': token.Pipe, '=': token.Assign,
	'<': token.Lt, '>': token.Gt, '@': token.At, '.': token.Dot, ',': token.Comma,
	';': token.Semicolon, ':': token.Colon, '#': token.Pound, '$': token.Dollar,
	'?': token.Question, '~': token.Tilde, '_': token.Underscore,
	'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
}

// Жадно: сначала 3-символьные, затем 2-символьные, затем одиночные.
// `<`, `>` и `=` между собой не склеиваются: `Vec<Vec<T>>` закрывается по одному `>`.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '='):
		return lx.emit(token.DotDotEq, start)
	case lx.try3('.', '.', '.'):
		return lx.emit(token.DotDotDot, start)
	case lx.try2('.', '.'):
		return lx.emit(token.DotDot, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('-', '>'):
		return lx.emit(token.Arrow, start)
	case lx.try2('=', '>'):
		return lx.emit(token.FatArrow, start)
	case lx.try2('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	}

	if k := singleByteOps[lx.cursor.Peek()]; k != token.Invalid {
		lx.cursor.Bump()
		return lx.emit(k, start)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
