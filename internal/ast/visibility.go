package ast

import (
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// VisKind описывает доступность элемента.
type VisKind uint8

const (
	VisPrivate VisKind = iota
	VisPublic
	VisCrate      // `crate` или `pub(crate)`
	VisRestricted // `pub(self)`, `pub(super)`, `pub(in path)`
)

func (v VisKind) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisCrate:
		return "crate"
	case VisRestricted:
		return "restricted"
	default:
		return "private"
	}
}

type Visibility struct {
	Kind   VisKind
	Tokens token.Stream
	Span   source.Span
}
