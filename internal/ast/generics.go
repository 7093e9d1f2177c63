package ast

import (
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

type GenericParamKind uint8

const (
	ParamLifetime GenericParamKind = iota
	ParamType
	ParamConst
)

func (k GenericParamKind) String() string {
	switch k {
	case ParamLifetime:
		return "lifetime"
	case ParamConst:
		return "const"
	default:
		return "type"
	}
}

// GenericParam: один параметр из `<...>`.
// Bounds не включает ':'; для const-параметра тип лежит в ConstType.
type GenericParam struct {
	Kind      GenericParamKind
	Name      token.Token
	Attrs     []Attr
	HasColon  bool
	Bounds    token.Stream
	ConstType token.Stream
	Default   token.Stream
	Span      source.Span
}

// Generics holds the parameter list and the where clause (without `where`).
type Generics struct {
	Params   []GenericParam
	HasWhere bool
	Where    token.Stream
	Span     source.Span
}

func (g Generics) Empty() bool {
	return len(g.Params) == 0
}
