package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug", "DEBUG"} {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if !strings.EqualFold(lvl.String(), name) {
			t.Fatalf("ParseLevel(%q) = %v", name, lvl)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Ring")
	if err != nil || m != ModeRing {
		t.Fatalf("ParseMode(Ring) = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		kind  Kind
		want  bool
	}{
		{LevelOff, ScopeDriver, KindError, false},
		{LevelError, ScopeSite, KindError, true},
		{LevelError, ScopeDriver, KindSpanBegin, false},
		{LevelPhase, ScopeDriver, KindSpanBegin, true},
		{LevelPhase, ScopeFile, KindSpanBegin, false},
		{LevelDetail, ScopeFile, KindPoint, true},
		{LevelDetail, ScopeSite, KindPoint, false},
		{LevelDebug, ScopeSite, KindSpanEnd, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope, tc.kind); got != tc.want {
			t.Errorf("%v.ShouldEmit(%v, %v) = %v, want %v", tc.level, tc.scope, tc.kind, got, tc.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)

	sp := Begin(tr, ScopeFile, "file", 0)
	Point(tr, ScopeSite, "site", "Point", sp.ID())
	sp.WithExtra("sites", "1").End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[file]   → file") {
		t.Errorf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "[site]     • site (Point)") {
		t.Errorf("point line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "← file (ok) {dur=") || !strings.Contains(lines[2], "sites=1}") {
		t.Errorf("end line: %q", lines[2])
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	sp := Begin(tr, ScopeFile, "file", 0)
	if sp.ID() != 0 {
		t.Fatal("file span must be inert at phase level")
	}
	sp.End("")
	Error(tr, ScopeSite, "site", "boom", 0)

	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "✗ site (boom)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopeDriver, "expand", 0).End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev["kind"] != "end" || ev["scope"] != "driver" || ev["detail"] != "done" {
		t.Fatalf("unexpected event: %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeSite, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	got := []string{snap[0].Name, snap[1].Name, snap[2].Name}
	if strings.Join(got, "") != "cde" {
		t.Fatalf("unexpected order: %v", got)
	}
	if snap[0].Seq >= snap[2].Seq {
		t.Fatal("sequence numbers must increase")
	}

	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump: %q", buf.String())
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(LevelDebug, NewStreamTracer(&buf, LevelDebug, FormatText), ring)
	Point(m, ScopeDriver, "x", "", 0)

	if m.Ring() != ring {
		t.Fatal("Ring() must return the ring tracer")
	}
	if len(ring.Snapshot()) != 1 || buf.Len() == 0 {
		t.Fatal("event must reach both tracers")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	ring := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	sp := Begin(ring, ScopeDriver, "expand", 0)
	ctx = WithSpan(ctx, sp)
	if ParentFrom(ctx) != sp.ID() || sp.ID() == 0 {
		t.Fatal("span id not propagated")
	}
}
