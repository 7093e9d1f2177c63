package ast

import (
	"slices"
	"strings"

	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// Attr описывает внешний атрибут `#[path input]`.
type Attr struct {
	Path []string
	// Delim is LParen/LBracket/LBrace for delimited input, Assign for
	// `= value`, or Invalid when the attribute has no input.
	Delim token.Kind
	// Args holds the input without the delimiters (or the value after `=`).
	Args   token.Stream
	Tokens token.Stream
	Span   source.Span
}

// Name returns the last path segment.
func (a Attr) Name() string {
	if len(a.Path) == 0 {
		return ""
	}
	return a.Path[len(a.Path)-1]
}

// PathString joins the path with `::`.
func (a Attr) PathString() string {
	return strings.Join(a.Path, "::")
}

// IsPath reports whether the attribute path equals segs.
func (a Attr) IsPath(segs ...string) bool {
	return slices.Equal(a.Path, segs)
}
