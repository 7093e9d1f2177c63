package ast

import (
	"strconv"

	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// DeclKind: вид объявления, для которого разрешён derive.
type DeclKind uint8

const (
	DeclStruct DeclKind = iota + 1
	DeclEnum
	DeclUnion
)

func (k DeclKind) String() string {
	switch k {
	case DeclStruct:
		return "struct"
	case DeclEnum:
		return "enum"
	case DeclUnion:
		return "union"
	default:
		return "invalid"
	}
}

// Shape describes how a struct or variant carries data.
type Shape uint8

const (
	ShapeUnit Shape = iota
	ShapeTuple
	ShapeNamed
)

func (s Shape) String() string {
	switch s {
	case ShapeTuple:
		return "tuple"
	case ShapeNamed:
		return "named"
	default:
		return "unit"
	}
}

// Decl is a fully parsed struct, enum or union. A Decl is never partial:
// the parser returns either a complete value or an error.
type Decl struct {
	Kind     DeclKind
	Name     string
	NameSpan source.Span
	Vis      Visibility
	Attrs    []Attr
	Generics Generics
	Shape    Shape // для enum всегда ShapeNamed (тело в фигурных скобках)
	Fields   []Field
	Variants []Variant
	Span     source.Span
	Tokens   token.Stream
}

// Field: поле struct/union. Для кортежных полей Name пустое, Index: позиция.
type Field struct {
	Name  string
	Index int
	Span  source.Span
	Attrs []Attr
}

// Label returns the field name, or its index for tuple fields.
func (f Field) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return strconv.Itoa(f.Index)
}

type Variant struct {
	Name   string
	Span   source.Span
	Shape  Shape
	Fields int
	Attrs  []Attr
}

// AttrsNamed returns the outer attributes whose path is exactly name.
func (d *Decl) AttrsNamed(name string) []Attr {
	var out []Attr
	for _, a := range d.Attrs {
		if a.IsPath(name) {
			out = append(out, a)
		}
	}
	return out
}
