package token_test

import (
	"errors"
	"testing"

	"hellomacro/internal/token"
)

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"Hello, Macro! I'm a Cat!": `"Hello, Macro! I'm a Cat!"`,
		"欢迎 User":                  `"欢迎 User"`,
		`say "hi"`:                 `"say \"hi\""`,
		"a\\b\n\t":                 `"a\\b\n\t"`,
		"bell\x07":                 `"bell\u{7}"`,
	}
	for in, want := range tests {
		if got := token.Quote(in); got != want {
			t.Errorf("Quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := map[string]string{
		`"plain"`:            "plain",
		`"a\nb\t\"q\"\\"`:    "a\nb\t\"q\"\\",
		`"\x41\u{1F600}"`:    "A\U0001F600",
		`r"raw\n"`:           `raw\n`,
		`r#"has "quotes""#`:  `has "quotes"`,
		`b"bytes"`:           "bytes",
		"\"line \\\n   end\"": "line end",
	}
	for in, want := range tests {
		got, err := token.Unquote(in)
		if err != nil {
			t.Fatalf("Unquote(%s): %v", in, err)
		}
		if got != want {
			t.Fatalf("Unquote(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestUnquoteRejects(t *testing.T) {
	for _, in := range []string{`plain`, `"\q"`, `"\x"`, `"\xFF"`, `"\u{}"`, `r#"x"`, `'c'`} {
		if _, err := token.Unquote(in); !errors.Is(err, token.ErrBadLiteral) {
			t.Fatalf("Unquote(%s) err = %v, want ErrBadLiteral", in, err)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{"", "{name}", "tab\there", "ü ß 😀", "\x00\x1f"} {
		got, err := token.Unquote(token.Quote(s))
		if err != nil || got != s {
			t.Fatalf("round trip %q -> %q (%v)", s, got, err)
		}
	}
}
