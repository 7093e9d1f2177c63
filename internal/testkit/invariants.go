package testkit

import (
	"fortio.org/safecast"
	"github.com/cockroachdb/errors"

	"hellomacro/internal/parser"
	"hellomacro/internal/source"
	"hellomacro/internal/token"
)

// CheckStreamSpans checks the spans of a lexed stream:
// 1) every positioned token points at the stream's file and lies within its content
// 2) positioned tokens are ordered and do not overlap
// Synthesized tokens (empty span) are skipped.
func CheckStreamSpans(s token.Stream) error {
	f := s.File()
	if f == nil {
		return errors.New("stream has no origin file")
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return errors.Wrap(err, "len content overflow")
	}

	var prev source.Span
	for i, t := range s.Tokens() {
		sp := t.Span
		if sp.Empty() {
			continue
		}
		if sp.File != f.ID {
			return errors.Newf("token %d %q: span file mismatch: got=%d want=%d", i, t.Text, sp.File, f.ID)
		}
		if sp.End > lenContent {
			return errors.Newf("token %d %q: span end beyond content: %d > %d", i, t.Text, sp.End, lenContent)
		}
		if sp.Start < prev.End {
			return errors.Newf("token %d %q: span %v overlaps previous %v", i, t.Text, sp, prev)
		}
		prev = sp
	}
	return nil
}

// CheckBalanced reports the first unmatched delimiter of s.
func CheckBalanced(s token.Stream) error {
	var stack []token.Token
	for _, t := range s.Tokens() {
		switch {
		case t.Kind.IsOpen():
			stack = append(stack, t)
		case t.Kind.IsClose():
			if len(stack) == 0 {
				return errors.Newf("unmatched %s at %v", t.Kind, t.Span)
			}
			top := stack[len(stack)-1]
			if top.Kind.Closer() != t.Kind {
				return errors.Newf("%s at %v closes %s opened at %v", t.Kind, t.Span, top.Kind, top.Span)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return errors.Newf("unclosed %s opened at %v", top.Kind, top.Span)
	}
	return nil
}

// CheckItems checks that items split from s are disjoint, ordered and
// contained in s, and that every module body lies inside its item.
func CheckItems(s token.Stream, items []parser.Item) error {
	whole := s.Span()
	var prev source.Span
	for i, it := range items {
		sp := it.Tokens.Span()
		if sp.Empty() {
			return errors.Newf("item %d has an empty span", i)
		}
		if !whole.Contains(sp) {
			return errors.Newf("item %d span %v is outside stream span %v", i, sp, whole)
		}
		if i > 0 && sp.Start < prev.End {
			return errors.Newf("item %d span %v overlaps previous %v", i, sp, prev)
		}
		if body := it.Body.Span(); !body.Empty() && !sp.Contains(body) {
			return errors.Newf("item %d body %v escapes item %v", i, body, sp)
		}
		prev = sp
	}
	return nil
}
