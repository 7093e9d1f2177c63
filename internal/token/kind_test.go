package token_test

import (
	"testing"

	"hellomacro/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"struct": token.KwStruct,
		"enum":   token.KwEnum,
		"pub":    token.KwPub,
		"where":  token.KwWhere,
		"fn":     token.KwFn,
		"self":   token.KwSelfValue,
		"Self":   token.KwSelfType,
		"crate":  token.KwCrate,
	}
	for in, want := range cases {
		got, ok := token.LookupKeyword(in)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v,%v want %v", in, got, ok, want)
		}
		if !got.IsKeyword() {
			t.Fatalf("%v must be a keyword", got)
		}
	}
	for _, in := range []string{"union", "Struct", "macro_rules", "HelloMacro", ""} {
		if k, ok := token.LookupKeyword(in); ok {
			t.Fatalf("%q must not be a keyword, got %v", in, k)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.ColonColon: "::",
		token.KwImpl:     "impl",
		token.Lifetime:   "lifetime",
		token.RBracket:   "]",
		token.Kind(250):  "Kind(250)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Fatalf("String(%d) = %q, want %q", uint8(k), got, want)
		}
	}
}

func TestDelimiters(t *testing.T) {
	pairs := [][2]token.Kind{
		{token.LParen, token.RParen},
		{token.LBrace, token.RBrace},
		{token.LBracket, token.RBracket},
	}
	for _, p := range pairs {
		if !p[0].IsOpen() || !p[1].IsClose() || p[0].Closer() != p[1] {
			t.Fatalf("bad delimiter pair %v %v", p[0], p[1])
		}
	}
	if token.Lt.IsOpen() || token.Lt.Closer() != token.Invalid {
		t.Fatalf("< is not a group delimiter")
	}
}

func TestTokenPredicates(t *testing.T) {
	if !token.Synth(token.StringLit, `"x"`).IsLiteral() || !token.Synth(token.KwTrue, "").IsLiteral() {
		t.Fatalf("literals not recognized")
	}
	if token.Synth(token.Ident, "x").IsLiteral() {
		t.Fatalf("ident is not a literal")
	}
	if !token.Synth(token.Ident, "union").IsIdentText("union") {
		t.Fatalf("contextual keyword lookup failed")
	}
	if !token.Synth(token.Comma, "").IsPunct() || token.Synth(token.KwFn, "").IsPunct() {
		t.Fatalf("IsPunct wrong")
	}
	if tok := token.Synth(token.Arrow, ""); tok.Text != "->" {
		t.Fatalf("Synth default text = %q", tok.Text)
	}
}
