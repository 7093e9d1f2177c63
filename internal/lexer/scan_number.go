package lexer

import (
	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

// scanNumber: 123, 1_000, 0x1F, 0o17, 0b1010, 1.5, 1e-3, 2.0f32, 8usize.
// Суффикс: любой хвост идентификатора, Kind не зависит от суффикса
// (кроме f32/f64 на целом числе).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		var ok func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x':
			ok = isHex
		case 'o':
			ok = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'b':
			ok = func(b byte) bool { return b == '0' || b == '1' }
		}
		if ok != nil {
			lx.cursor.Off += 2
			digits := 0
			for b := lx.cursor.Peek(); ok(b) || b == '_'; b = lx.cursor.Peek() {
				if b != '_' {
					digits++
				}
				lx.cursor.Bump()
			}
			if digits == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "missing digits after integer base prefix")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			lx.scanSuffix()
			return lx.emit(kind, start)
		}
	}

	lx.digits()
	// "1." это float, а "1..2" и "1.foo" нет
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.digits()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// не экспонента, а суффикс: 1em, пусть суффикс разберётся
			lx.cursor.Reset(m)
		} else {
			kind = token.FloatLit
			lx.digits()
		}
	}
	if suffix := lx.scanSuffix(); suffix == "f32" || suffix == "f64" {
		kind = token.FloatLit
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) digits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanSuffix() string {
	m := lx.cursor.Mark()
	if !isIdentStartByte(lx.cursor.Peek()) {
		return ""
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.text(lx.cursor.SpanFrom(m))
}
