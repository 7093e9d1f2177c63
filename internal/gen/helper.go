package gen

import (
	"hellomacro/internal/ast"
	"hellomacro/internal/diag"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// override is a message found in a helper attribute.
type override struct {
	Message string
	Span    source.Span
	Set     bool
}

// parseHelpers reads `#[hello_macro(message = "...")]` attributes.
// Only `message` is known; it may appear once across all attributes.
func parseHelpers(attrs []ast.Attr) (override, error) {
	var ov override
	for _, a := range attrs {
		if a.Delim != token.LParen {
			return ov, templateErr(diag.TplMalformedHelper, a.Span,
				"expected `#[%s(key = \"value\", ...)]`", a.PathString())
		}
		for _, seg := range splitArgs(a.Args) {
			if seg.IsEmpty() {
				return ov, templateErr(diag.TplMalformedHelper, a.Span, "empty entry in `%s(...)`", a.PathString())
			}
			key := seg.At(0)
			if key.Kind != token.Ident {
				return ov, templateErr(diag.TplMalformedHelper, key.Span, "expected option name, found `%s`", key.Text)
			}
			if key.Text != "message" {
				return ov, templateErr(diag.TplUnknownHelperKey, key.Span, "unknown option `%s` in `%s(...)`; expected `message`", key.Text, a.PathString())
			}
			if seg.Len() < 3 || seg.At(1).Kind != token.Assign {
				return ov, templateErr(diag.TplMalformedHelper, seg.Span(), "expected `message = \"...\"`")
			}
			if seg.Len() > 3 {
				return ov, templateErr(diag.TplMalformedHelper, seg.Slice(3, seg.Len()).Span(), "unexpected tokens after `message` value")
			}
			val := seg.At(2)
			if val.Kind != token.StringLit && val.Kind != token.RawStringLit {
				return ov, templateErr(diag.TplNonStringValue, val.Span, "`message` must be a string literal, found `%s`", val.Text)
			}
			if ov.Set {
				return ov, templateErr(diag.TplDuplicateOption, key.Span, "`message` is specified more than once")
			}
			s, err := token.Unquote(val.Text)
			if err != nil {
				return ov, templateErr(diag.TplNonStringValue, val.Span, "`message` must be a plain string literal: %v", err)
			}
			ov = override{Message: s, Span: val.Span, Set: true}
		}
	}
	return ov, nil
}

// splitArgs режет по запятым верхнего уровня; завершающая запятая допустима.
func splitArgs(in token.Stream) []token.Stream {
	var out []token.Stream
	depth, start := 0, 0
	for i := 0; i < in.Len(); i++ {
		switch k := in.At(i).Kind; {
		case k.IsOpen():
			depth++
		case k.IsClose():
			depth--
		case k == token.Comma && depth == 0:
			out = append(out, in.Slice(start, i))
			start = i + 1
		}
	}
	if start < in.Len() {
		out = append(out, in.Slice(start, in.Len()))
	}
	return out
}
