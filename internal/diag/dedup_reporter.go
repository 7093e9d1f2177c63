package diag

import (
	"sync"

	"hellomacro/internal/source"
)

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func keyOf(code Code, sev Severity, span source.Span, msg string) dedupKey {
	return dedupKey{code: code, sev: sev, span: span, msg: msg}
}

// DedupReporter forwards each distinct diagnostic once.
type DedupReporter struct {
	next Reporter
	mu   sync.Mutex
	seen map[dedupKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	k := keyOf(code, sev, primary, msg)
	r.mu.Lock()
	_, dup := r.seen[k]
	r.seen[k] = struct{}{}
	r.mu.Unlock()
	if dup || r.next == nil {
		return
	}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}
