package token

import (
	"strings"

	"hellomacro/internal/source"
)

// Stream is an immutable token sequence. Accessors never expose the
// backing array, so a Stream can be handed to the next stage as a value.
type Stream struct {
	file *source.File
	toks []Token
}

// NewStream copies toks (dropping EOF) into a new Stream. file is the
// origin of the tokens and may be nil for synthesized input.
func NewStream(file *source.File, toks []Token) Stream {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == EOF {
			continue
		}
		out = append(out, t)
	}
	return Stream{file: file, toks: out}
}

// Of builds a synthesized Stream.
func Of(toks ...Token) Stream {
	return NewStream(nil, toks)
}

// Concat joins streams. The origin file survives only when all parts share it.
func Concat(parts ...Stream) Stream {
	var (
		file  *source.File
		seen  bool
		mixed bool
		n     int
	)
	for _, p := range parts {
		if len(p.toks) == 0 {
			continue
		}
		n += len(p.toks)
		switch {
		case !seen:
			file, seen = p.file, true
		case p.file != file:
			mixed = true
		}
	}
	if mixed {
		file = nil
	}
	toks := make([]Token, 0, n)
	for _, p := range parts {
		toks = append(toks, p.toks...)
	}
	return Stream{file: file, toks: toks}
}

func (s Stream) Len() int      { return len(s.toks) }
func (s Stream) IsEmpty() bool { return len(s.toks) == 0 }

// At returns the i-th token; out of range yields an EOF token.
func (s Stream) At(i int) Token {
	if i < 0 || i >= len(s.toks) {
		return Token{Kind: EOF, Span: s.Span().ZeroideToEnd()}
	}
	return s.toks[i]
}

// Tokens returns a copy of the tokens.
func (s Stream) Tokens() []Token {
	out := make([]Token, len(s.toks))
	copy(out, s.toks)
	return out
}

// Slice returns tokens [i, j). Bounds are clamped.
func (s Stream) Slice(i, j int) Stream {
	i = max(0, min(i, len(s.toks)))
	j = max(i, min(j, len(s.toks)))
	return Stream{file: s.file, toks: s.toks[i:j:j]}
}

// File returns the origin file, or nil.
func (s Stream) File() *source.File { return s.file }

// Span covers all positioned tokens of the stream.
func (s Stream) Span() source.Span {
	var (
		sp  source.Span
		set bool
	)
	for _, t := range s.toks {
		if t.Span.Empty() {
			continue
		}
		if !set {
			sp, set = t.Span, true
			continue
		}
		sp = sp.Cover(t.Span)
	}
	return sp
}

// Equal compares kinds and texts; positions and trivia are ignored.
func (s Stream) Equal(other Stream) bool {
	if len(s.toks) != len(other.toks) {
		return false
	}
	for i := range s.toks {
		if s.toks[i].Kind != other.toks[i].Kind || s.toks[i].Text != other.toks[i].Text {
			return false
		}
	}
	return true
}

// isPathSegment reports whether k can be directly followed by `::` in a path.
func isPathSegment(k Kind) bool {
	switch k {
	case Ident, Gt, KwSelfType, KwSelfValue, KwSuper, KwCrate:
		return true
	default:
		return false
	}
}

// Text returns the source text covered by the stream when it has an
// origin file, and the canonical rendering otherwise.
func (s Stream) Text() string {
	if s.file == nil || len(s.toks) == 0 {
		return s.String()
	}
	for _, t := range s.toks {
		if t.Span.File != s.file.ID || (t.Span.Empty() && t.Text != "") {
			return s.String()
		}
	}
	return string(s.file.Slice(s.Span()))
}

// String renders the tokens on one line with canonical spacing.
func (s Stream) String() string {
	var sb strings.Builder
	for i, t := range s.toks {
		if i > 0 && spaceBetween(s.toks[i-1], t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func spaceBetween(prev, next Token) bool {
	switch prev.Kind {
	case LParen, LBracket, Pound, ColonColon, Dot, Dollar, Amp, Lt:
		return false
	case Bang:
		if next.Kind.IsOpen() {
			return false
		}
	case Question:
		// ?Sized
		if next.Kind == Ident {
			return false
		}
	}
	switch next.Kind {
	case RParen, RBracket, Comma, Semicolon, Colon, Dot, Gt:
		return false
	case ColonColon:
		// `a::b`, но `T: ::core::X`; `:::` перелексируется как `::` `:`
		return !isPathSegment(prev.Kind)
	case Question:
		// `T: ?Sized`, `A + ?Sized`, но `x?`
		return prev.Kind == Colon || prev.Kind == Plus
	case Lt:
		return !(prev.Kind == Ident || prev.Kind == KwImpl || prev.Kind == KwSelfType || prev.Kind == KwFor)
	case LParen:
		return !(prev.Kind == Ident || prev.Kind == Bang || prev.Kind == KwPub || prev.Kind == KwSelfType)
	case LBracket:
		return !(prev.Kind == Pound || prev.Kind == Bang || prev.Kind == Ident)
	case Bang:
		return prev.Kind != Ident && prev.Kind != Pound
	}
	return true
}
