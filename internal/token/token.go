package token

import (
	"hellomacro/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Synth builds a token that has no source position (generated code).
func Synth(kind Kind, text string) Token {
	if text == "" {
		text = kind.String()
	}
	return Token{Kind: kind, Text: text}
}

// IsLiteral reports whether the token is a numeric, string, char or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, RawStringLit, CharLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentText reports whether the token is the identifier s (contextual keywords).
func (t Token) IsIdentText(s string) bool { return t.Kind == Ident && t.Text == s }

// IsPunct reports whether the token is punctuation or an operator.
func (t Token) IsPunct() bool { return t.Kind >= Plus }
