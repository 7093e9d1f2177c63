package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	done := tm.Track("sites")
	done("")
	tm.Begin("splice") // never ended

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "lex" || r.Phases[0].DurationMS != 1 || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected first phase: %+v", r.Phases[0])
	}
	if r.TotalMS != 2 {
		t.Fatalf("total = %v, want 2", r.TotalMS)
	}
}

func TestTimerEndIsIdempotent(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	idx := tm.Begin("lex")
	tm.End(idx, "first")
	tm.End(idx, "second")
	tm.End(42, "ignored")
	if got := tm.Report().Phases[0].Note; got != "first" {
		t.Fatalf("note = %q, want first", got)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(500 * time.Microsecond)
	tm.Track("items")("3 items")
	s := tm.Summary()
	if !strings.Contains(s, "items") || !strings.Contains(s, "// 3 items") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
}

func TestMillis(t *testing.T) {
	if got := Millis(1500 * time.Microsecond); got != 1.5 {
		t.Fatalf("Millis = %v", got)
	}
}
