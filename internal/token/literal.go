package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrBadLiteral is returned by Unquote for text that is not a string literal.
var ErrBadLiteral = errors.New("invalid string literal")

// Quote renders s as a string literal in the input language.
// Non-ASCII printable text is kept as is.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f || r == utf8.RuneError {
				fmt.Fprintf(&sb, `\u{%x}`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unquote decodes a string literal token text: "...", b"...", r"...", r#"..."#.
func Unquote(text string) (string, error) {
	body := strings.TrimPrefix(text, "b")
	if strings.HasPrefix(body, "r") {
		return unquoteRaw(text, body[1:])
	}
	if len(body) < 2 || body[0] != '"' || body[len(body)-1] != '"' {
		return "", fmt.Errorf("%w: %s", ErrBadLiteral, text)
	}
	body = body[1 : len(body)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("%w: trailing backslash", ErrBadLiteral)
		}
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '\\', '"', '\'':
			sb.WriteByte(body[i])
		case '\n':
			// продолжение строки: пропускаем ведущие пробелы следующей
			for i+1 < len(body) && strings.IndexByte(" \t\n\r", body[i+1]) >= 0 {
				i++
			}
		case 'x':
			if i+2 >= len(body) {
				return "", fmt.Errorf("%w: short \\x escape", ErrBadLiteral)
			}
			v, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
			if err != nil || v > 0x7f {
				return "", fmt.Errorf("%w: bad \\x escape", ErrBadLiteral)
			}
			sb.WriteByte(byte(v))
			i += 2
		case 'u':
			end := strings.IndexByte(body[i:], '}')
			if i+1 >= len(body) || body[i+1] != '{' || end < 0 {
				return "", fmt.Errorf("%w: bad \\u escape", ErrBadLiteral)
			}
			hex := strings.ReplaceAll(body[i+2:i+end], "_", "")
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil || hex == "" || !utf8.ValidRune(rune(v)) {
				return "", fmt.Errorf("%w: bad \\u escape", ErrBadLiteral)
			}
			sb.WriteRune(rune(v))
			i += end
		default:
			return "", fmt.Errorf("%w: unknown escape \\%c", ErrBadLiteral, body[i])
		}
	}
	return sb.String(), nil
}

func unquoteRaw(text, body string) (string, error) {
	hashes := 0
	for hashes < len(body) && body[hashes] == '#' {
		hashes++
	}
	fence := strings.Repeat("#", hashes)
	inner := body[hashes:]
	if len(inner) < 2 || inner[0] != '"' || !strings.HasSuffix(inner, `"`+fence) || len(inner) < 2+hashes {
		return "", fmt.Errorf("%w: %s", ErrBadLiteral, text)
	}
	return inner[1 : len(inner)-1-hashes], nil
}
