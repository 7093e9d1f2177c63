package cfgpred

import (
	"errors"
	"fmt"
	"strings"

	"hellomacro/internal/diag"
	"hellomacro/internal/lexer"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// ErrMalformed matches every *Error.
var ErrMalformed = errors.New("malformed cfg predicate")

type Error struct {
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", diag.CfgMalformed.ID(), e.Msg)
}

func (e *Error) Is(target error) bool { return target == ErrMalformed }

type Op uint8

const (
	OpName Op = iota
	OpKeyValue
	OpAll
	OpAny
	OpNot
)

// Expr is a parsed cfg predicate.
type Expr struct {
	Op    Op
	Name  string
	Value string
	Args  []Expr
	Span  source.Span
}

func (e Expr) String() string {
	switch e.Op {
	case OpName:
		return e.Name
	case OpKeyValue:
		return e.Name + " = " + token.Quote(e.Value)
	}
	parts := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		parts = append(parts, a.String())
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Parse reads exactly one predicate, e.g. the contents of `#[cfg(...)]`.
func Parse(in token.Stream) (Expr, error) {
	p := &exprParser{in: in}
	e, err := p.expr()
	if err != nil {
		return Expr{}, err
	}
	if p.pos < in.Len() {
		return Expr{}, p.errAt(p.pos, "unexpected `%s` after predicate", in.At(p.pos).Text)
	}
	return e, nil
}

// ParseString lexes text and parses it. A surrounding `cfg(...)` is accepted.
func ParseString(text string) (Expr, error) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	in := lexer.Stream(fs.Get(fs.AddVirtual("<cfg>", []byte(text))), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		d := bag.Items()[0]
		return Expr{}, &Error{Span: d.Primary, Msg: d.Message}
	}
	if in.Len() >= 3 && in.At(0).IsIdentText("cfg") && in.At(1).Kind == token.LParen && in.At(in.Len()-1).Kind == token.RParen {
		in = in.Slice(2, in.Len()-1)
	}
	return Parse(in)
}

type exprParser struct {
	in  token.Stream
	pos int
}

func (p *exprParser) errAt(i int, format string, args ...any) *Error {
	sp := p.in.At(i).Span
	if i >= p.in.Len() {
		sp = p.in.Span().ZeroideToEnd()
	}
	return &Error{Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func (p *exprParser) expr() (Expr, error) {
	name := p.in.At(p.pos)
	if name.Kind != token.Ident {
		if name.Kind == token.EOF {
			return Expr{}, p.errAt(p.pos, "expected cfg predicate, found end of input")
		}
		return Expr{}, p.errAt(p.pos, "expected cfg predicate, found `%s`", name.Text)
	}
	p.pos++
	e := Expr{Name: name.Text, Span: name.Span}

	switch p.in.At(p.pos).Kind {
	case token.Assign:
		p.pos++
		val := p.in.At(p.pos)
		if val.Kind != token.StringLit && val.Kind != token.RawStringLit {
			return Expr{}, p.errAt(p.pos, "expected string literal after `%s =`", name.Text)
		}
		s, err := token.Unquote(val.Text)
		if err != nil {
			return Expr{}, p.errAt(p.pos, "bad string literal: %v", err)
		}
		p.pos++
		e.Op, e.Value = OpKeyValue, s
		e.Span = name.Span.Cover(val.Span)
		return e, nil

	case token.LParen:
		switch name.Text {
		case "all":
			e.Op = OpAll
		case "any":
			e.Op = OpAny
		case "not":
			e.Op = OpNot
		default:
			return Expr{}, p.errAt(p.pos-1, "unknown cfg operator `%s`; expected `all`, `any` or `not`", name.Text)
		}
		p.pos++
		for p.in.At(p.pos).Kind != token.RParen {
			arg, err := p.expr()
			if err != nil {
				return Expr{}, err
			}
			e.Args = append(e.Args, arg)
			if p.in.At(p.pos).Kind == token.Comma {
				p.pos++
				continue
			}
			if p.in.At(p.pos).Kind != token.RParen {
				return Expr{}, p.errAt(p.pos, "expected `,` or `)` in `%s(...)`", name.Text)
			}
		}
		closeTok := p.in.At(p.pos)
		p.pos++
		e.Span = name.Span.Cover(closeTok.Span)
		if e.Op == OpNot && len(e.Args) != 1 {
			return Expr{}, &Error{Span: e.Span, Msg: fmt.Sprintf("`not` takes exactly one predicate, got %d", len(e.Args))}
		}
		return e, nil
	}

	e.Op = OpName
	return e, nil
}

// Eval evaluates e. Unknown predicates are false.
func (r Resolver) Eval(e Expr) bool {
	switch e.Op {
	case OpName:
		return r.Resolve(e.Name)
	case OpKeyValue:
		return r.ResolveKey(e.Name, e.Value)
	case OpAll:
		for _, a := range e.Args {
			if !r.Eval(a) {
				return false
			}
		}
		return true
	case OpAny:
		for _, a := range e.Args {
			if r.Eval(a) {
				return true
			}
		}
		return false
	case OpNot:
		return len(e.Args) == 1 && !r.Eval(e.Args[0])
	}
	return false
}

// Unknown lists leaf predicates the resolver does not understand; user
// flags count as known.
func (r Resolver) Unknown(e Expr) []Expr {
	var out []Expr
	var walk func(Expr)
	walk = func(e Expr) {
		switch e.Op {
		case OpName, OpKeyValue:
			if !Known(e.Name) && !(e.Op == OpName && r.Resolve(e.Name)) {
				out = append(out, e)
			}
		default:
			for _, a := range e.Args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}
