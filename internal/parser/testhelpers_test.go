package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hellomacro/internal/diag"
	"hellomacro/internal/lexer"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

func lex(t *testing.T, src string) token.Stream {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	s := lexer.Stream(fs.Get(fs.AddVirtual("input.rs", []byte(src))), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	require.False(t, bag.HasErrors(), "lex errors: %v", bag.Items())
	return s
}

func parseErr(t *testing.T, src string) *Error {
	t.Helper()
	d, err := ParseDecl(lex(t, src), Options{})
	require.Error(t, err, "expected error for %q", src)
	require.Nil(t, d)
	require.ErrorIs(t, err, ErrParse)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	return pe
}
