package lexer

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// collectLeadingTrivia собирает trivia перед значимым токеном:
// пробелы/табы и переводы строк коалесцируются, // и /* */ (с вложенностью)
// становятся комментариями, /// //! /** /*! считаются doc-комментариями.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = nil
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		var kind token.TriviaKind
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for c := lx.cursor.Peek(); c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'; c = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			kind = token.TriviaSpace
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			kind = token.TriviaNewline
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			kind = lx.scanLineComment()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			kind = lx.scanBlockComment()
		default:
			return
		}
		if !lx.opts.KeepDocTrivia && (kind == token.TriviaDocLine || kind == token.TriviaDocBlock) {
			continue
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
	}
}

func (lx *Lexer) scanLineComment() token.TriviaKind {
	kind := token.TriviaLineComment
	// "///x" и "//!" это doc, а "////" обычный комментарий
	third, fourth := lx.cursor.PeekAt(2), lx.cursor.PeekAt(3)
	if third == '!' || (third == '/' && fourth != '/') {
		kind = token.TriviaDocLine
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return kind
}

func (lx *Lexer) scanBlockComment() token.TriviaKind {
	start := lx.cursor.Mark()
	kind := token.TriviaBlockComment
	third, fourth := lx.cursor.PeekAt(2), lx.cursor.PeekAt(3)
	if third == '!' || (third == '*' && fourth != '*' && fourth != '/') {
		kind = token.TriviaDocBlock
	}
	lx.cursor.Off += 2
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.try2('/', '*'):
			depth++
		case lx.try2('*', '/'):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	return kind
}
