package gen

import (
	"strings"

	"hellomacro/internal/derive"
	"hellomacro/internal/token"
)

const (
	TraitName  = "HelloMacro"
	MethodName = "hello_macro"
)

// ImplItem is a trait implementation for one type.
type ImplItem struct {
	Generics []string
	Trait    []string
	SelfType string
	SelfArgs []string
	// Where is printed only when HasWhere is set; an empty clause stays `where`.
	Where    string
	HasWhere bool
	Methods  []Method
}

// Method is an associated function without parameters or return type.
type Method struct {
	Name string
	Body []MacroCall
}

// MacroCall is a statement `name!(args...);`. Args are already valid tokens.
type MacroCall struct {
	Name string
	Args []string
}

// BuildImpl assembles the HelloMacro implementation; msg is the rendered
// message and is embedded as a string literal argument.
func BuildImpl(sig derive.Signature, msg string) ImplItem {
	return ImplItem{
		Generics: streamsText(sig.Generics.Bound),
		Trait:    []string{TraitName},
		SelfType: sig.Name,
		SelfArgs: streamsText(sig.Generics.Bare),
		Where:    sig.Generics.Where.String(),
		HasWhere: sig.Generics.HasWhere,
		Methods: []Method{{
			Name: MethodName,
			Body: []MacroCall{{
				Name: "println",
				Args: []string{token.Quote("{}"), token.Quote(msg)},
			}},
		}},
	}
}

func streamsText(list []token.Stream) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.String())
	}
	return out
}

// Print renders item as source text ending with a newline.
func Print(item ImplItem, opt Options) []byte {
	w := NewWriter(opt)
	w.WriteString("impl")
	if len(item.Generics) > 0 {
		w.WriteString("<")
		w.List(item.Generics)
		w.WriteString(">")
	}
	w.Space()
	w.WriteString(strings.Join(item.Trait, "::"))
	w.WriteString(" for ")
	w.WriteString(item.SelfType)
	if len(item.SelfArgs) > 0 {
		w.WriteString("<")
		w.List(item.SelfArgs)
		w.WriteString(">")
	}
	if item.HasWhere {
		w.WriteString(" where")
		if item.Where != "" {
			w.Space()
			w.WriteString(item.Where)
		}
	}
	w.WriteString(" {")
	w.Newline()
	w.IndentPush()
	for i, m := range item.Methods {
		if i > 0 {
			w.Newline()
		}
		printMethod(w, m)
	}
	w.IndentPop()
	w.WriteString("}")
	w.Newline()
	return w.Bytes()
}

func printMethod(w *Writer, m Method) {
	w.WriteString("fn ")
	w.WriteString(m.Name)
	w.WriteString("() {")
	w.Newline()
	w.IndentPush()
	for _, call := range m.Body {
		w.WriteString(call.Name)
		w.WriteString("!(")
		w.List(call.Args)
		w.WriteString(");")
		w.Newline()
	}
	w.IndentPop()
	w.WriteString("}")
	w.Newline()
}
