package gen

import (
	"strings"

	"hellomacro/internal/diag"
	"hellomacro/internal/source"
)

// DefaultMessage is used when neither the helper attribute nor the host
// supplies a message.
const DefaultMessage = "Hello, Macro! I'm a {name}!"

// Vars are the values available to placeholders.
type Vars struct {
	Name string
	Kind string
}

func (v Vars) lookup(key string) (string, bool) {
	switch key {
	case "name":
		return v.Name, true
	case "kind":
		return v.Kind, true
	}
	return "", false
}

// Render expands `{name}` and `{kind}` in tmpl; `{{` and `}}` are literal
// braces. sp is attached to any error.
func Render(tmpl string, vars Vars, sp source.Span) (string, error) {
	var sb strings.Builder
	sb.Grow(len(tmpl) + len(vars.Name))
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexAny(tmpl[i+1:], "{}")
			if end < 0 || tmpl[i+1+end] == '{' {
				return "", templateErr(diag.TplUnbalancedBrace, sp, "unclosed `{` at byte %d in message template", i)
			}
			key := tmpl[i+1 : i+1+end]
			if key == "" {
				return "", templateErr(diag.TplUnknownPlaceholder, sp, "empty placeholder `{}` in message template; use `{{}}` for literal braces")
			}
			val, ok := vars.lookup(key)
			if !ok {
				return "", templateErr(diag.TplUnknownPlaceholder, sp, "unknown placeholder `{%s}` in message template; expected `{name}` or `{kind}`", key)
			}
			sb.WriteString(val)
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", templateErr(diag.TplUnbalancedBrace, sp, "unmatched `}` at byte %d in message template; use `}}` for a literal brace", i)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}
