package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellomacro/internal/lexer"
	"hellomacro/internal/parser"
	"hellomacro/internal/source"
)

func findSitesIn(t *testing.T, src string) []DeriveSite {
	t.Helper()
	fs := source.NewFileSet()
	in := lexer.Stream(fs.Get(fs.AddVirtual("s.rs", []byte(src))), lexer.Options{})
	items, err := parser.Items(in, parser.Options{})
	require.NoError(t, err)
	sites, err := FindSites(items)
	require.NoError(t, err)
	return sites
}

func TestFindSitesShapes(t *testing.T) {
	src := `#![allow(dead_code)]
use std::fmt;

#[derive(Debug)]
struct Plain;

#[derive(::hello_macro::HelloMacro)]
pub struct A;

#[derive(HelloMacro<T>, Clone)]
struct NotOurs;

mod outer {
    mod inner {
        #[cfg(unix)]
        #[derive(Clone, HelloMacro)]
        enum B { X }
    }
}
`
	sites := findSitesIn(t, src)
	require.Len(t, sites, 2)

	assert.Equal(t, "A", sites[0].Label())
	assert.Empty(t, sites[0].Cfg)

	assert.Equal(t, "outer::inner::B", sites[1].Label())
	assert.Equal(t, "B", sites[1].Name())
	require.Len(t, sites[1].Cfg, 1)
	assert.Equal(t, "cfg", sites[1].Cfg[0].Name())
}

func TestDeriveEntries(t *testing.T) {
	fs := source.NewFileSet()
	in := lexer.Stream(fs.Get(fs.AddVirtual("d.rs", []byte("Debug, a::HelloMacro, serde::Serialize,"))), lexer.Options{})
	entries := deriveEntries(in)
	require.Len(t, entries, 3)
	assert.False(t, entries[0].ours)
	assert.True(t, entries[1].ours)
	assert.False(t, entries[2].ours)
	assert.Equal(t, "a::HelloMacro", string(fs.Get(0).Slice(entries[1].span)))
}

func TestLineIndent(t *testing.T) {
	content := []byte("mod m {\n    struct A;\n} struct B;")
	assert.Equal(t, "    ", lineIndent(content, 12))
	assert.Equal(t, "", lineIndent(content, 24))
	assert.Equal(t, "", lineIndent(content, 0))
}
