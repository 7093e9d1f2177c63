package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellomacro/internal/diag"
	"hellomacro/internal/token"
)

func TestItemsSplitsFile(t *testing.T) {
	src := `#![allow(dead_code)]
use std::fmt;

#[derive(HelloMacro)]
pub struct Cat;

const X: Point = Point { x: 1, y: 2 };

#[derive(Debug, HelloMacro)]
struct Pair(u8, u8);

impl Cat {
    fn new() -> Self { Cat }
}

mod inner {
    #[derive(HelloMacro)]
    enum E { A }
}

macro_rules! m { () => {} }
const fn f() -> u8 { 1 }
extern crate core;
fn main() {}
`
	items, err := Items(lex(t, src), Options{})
	require.NoError(t, err)

	heads := make([]string, 0, len(items))
	for _, it := range items {
		if it.Inner {
			heads = append(heads, "#!")
			continue
		}
		heads = append(heads, it.Head.Text)
	}
	assert.Equal(t, []string{"#!", "use", "struct", "const", "struct", "impl", "mod", "macro_rules", "const", "extern", "fn"}, heads)

	assert.Equal(t, "#[derive(HelloMacro)] pub struct Cat;", items[2].Tokens.String())
	require.Len(t, items[4].Attrs, 1)
	assert.Equal(t, "Debug, HelloMacro", items[4].Attrs[0].Args.String())
	assert.Equal(t, 9, items[4].HeadIndex())

	mod := items[6]
	require.False(t, mod.Body.IsEmpty())
	nested, err := Items(mod.Body, Options{})
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, token.KwEnum, nested[0].Head.Kind)
}

func TestItemsErrors(t *testing.T) {
	tests := map[string]diag.Code{
		"struct A":              diag.SynUnexpectedToken,
		"struct A { x: u8":      diag.SynUnclosedDelimiter,
		"fn f() {} }":           diag.SynUnmatchedDelimiter,
		"#[derive(HelloMacro)]": diag.SynUnexpectedToken,
		"#! struct A;":          diag.SynBadAttribute,
	}
	for src, code := range tests {
		_, err := Items(lex(t, src), Options{})
		var pe *Error
		require.ErrorAs(t, err, &pe, src)
		assert.Equal(t, code, pe.Code, src)
	}
}
