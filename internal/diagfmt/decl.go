package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hellomacro/internal/ast"
	"hellomacro/internal/source"
)

// DeclOutput is the JSON form of a parsed declaration.
type DeclOutput struct {
	Kind       string        `json:"kind"`
	Name       string        `json:"name"`
	Visibility string        `json:"visibility,omitempty"`
	Attrs      []string      `json:"attrs,omitempty"`
	Generics   []ParamOutput `json:"generics,omitempty"`
	Where      *string       `json:"where,omitempty"`
	Shape      string        `json:"shape"`
	Fields     []string      `json:"fields,omitempty"`
	Variants   []string      `json:"variants,omitempty"`
	Span       source.Span   `json:"span"`
}

type ParamOutput struct {
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Bounds  string `json:"bounds,omitempty"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
}

func paramKind(k ast.GenericParamKind) string {
	switch k {
	case ast.ParamLifetime:
		return "lifetime"
	case ast.ParamConst:
		return "const"
	default:
		return "type"
	}
}

func shapeName(s ast.Shape) string {
	switch s {
	case ast.ShapeTuple:
		return "tuple"
	case ast.ShapeNamed:
		return "named"
	default:
		return "unit"
	}
}

// BuildDeclOutput converts d for JSON output.
func BuildDeclOutput(d *ast.Decl) DeclOutput {
	out := DeclOutput{
		Kind:       d.Kind.String(),
		Name:       d.Name,
		Visibility: d.Vis.Tokens.String(),
		Shape:      shapeName(d.Shape),
		Span:       d.Span,
	}
	for _, a := range d.Attrs {
		out.Attrs = append(out.Attrs, a.Tokens.String())
	}
	for _, p := range d.Generics.Params {
		out.Generics = append(out.Generics, ParamOutput{
			Kind:    paramKind(p.Kind),
			Name:    p.Name.Text,
			Bounds:  p.Bounds.String(),
			Type:    p.ConstType.String(),
			Default: p.Default.String(),
		})
	}
	if d.Generics.HasWhere {
		where := d.Generics.Where.String()
		out.Where = &where
	}
	for _, f := range d.Fields {
		out.Fields = append(out.Fields, f.Label())
	}
	for _, v := range d.Variants {
		out.Variants = append(out.Variants, v.Name)
	}
	return out
}

// FormatDeclJSON выводит декларацию в JSON.
func FormatDeclJSON(w io.Writer, d *ast.Decl) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDeclOutput(d))
}

// FormatDeclPretty печатает декларацию деревом.
func FormatDeclPretty(w io.Writer, d *ast.Decl, fs *source.FileSet) error {
	start, end := fs.Resolve(d.Span)
	if _, err := fmt.Fprintf(w, "%s %s (span: %d:%d-%d:%d)\n", cases.Title(language.English).String(d.Kind.String()), d.Name, start.Line, start.Col, end.Line, end.Col); err != nil {
		return err
	}

	var rows []string
	if vis := d.Vis.Tokens.String(); vis != "" {
		rows = append(rows, "Visibility: "+vis)
	}
	for _, a := range d.Attrs {
		rows = append(rows, "Attr: "+a.Tokens.String())
	}
	for i, p := range d.Generics.Params {
		row := fmt.Sprintf("Generic[%d]: %s %s", i, paramKind(p.Kind), p.Name.Text)
		if !p.ConstType.IsEmpty() {
			row += ": " + p.ConstType.String()
		}
		if !p.Bounds.IsEmpty() {
			row += ": " + p.Bounds.String()
		}
		if !p.Default.IsEmpty() {
			row += " = " + p.Default.String()
		}
		rows = append(rows, row)
	}
	if d.Generics.HasWhere {
		rows = append(rows, "Where: "+d.Generics.Where.String())
	}
	rows = append(rows, "Shape: "+shapeName(d.Shape))
	for _, f := range d.Fields {
		rows = append(rows, "Field: "+f.Label())
	}
	for _, v := range d.Variants {
		rows = append(rows, fmt.Sprintf("Variant: %s (%s, %d fields)", v.Name, shapeName(v.Shape), v.Fields))
	}

	for i, row := range rows {
		branch := "├─ "
		if i == len(rows)-1 {
			branch = "└─ "
		}
		if _, err := fmt.Fprintln(w, branch+row); err != nil {
			return err
		}
	}
	return nil
}
