package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	tests := []struct {
		name  string
		other Span
		want  Span
	}{
		{"inside", Span{File: 1, Start: 6, End: 7}, a},
		{"left", Span{File: 1, Start: 2, End: 6}, Span{File: 1, Start: 2, End: 10}},
		{"right", Span{File: 1, Start: 9, End: 20}, Span{File: 1, Start: 5, End: 20}},
		{"other file", Span{File: 2, Start: 0, End: 100}, a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Cover(tt.other); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanBasics(t *testing.T) {
	s := Span{File: 3, Start: 4, End: 9}
	if s.Len() != 5 || s.Empty() {
		t.Fatalf("Len/Empty wrong for %v", s)
	}
	if s.String() != "3:4-9" {
		t.Fatalf("String = %q", s.String())
	}
	if !s.Contains(Span{File: 3, Start: 4, End: 9}) || s.Contains(Span{File: 3, Start: 3, End: 5}) {
		t.Fatalf("Contains wrong")
	}
	if z := s.ZeroideToStart(); !z.Empty() || z.Start != 4 {
		t.Fatalf("ZeroideToStart = %v", z)
	}
	if z := s.ZeroideToEnd(); !z.Empty() || z.Start != 9 {
		t.Fatalf("ZeroideToEnd = %v", z)
	}
	if (Span{Start: 9, End: 4}).Len() != 0 {
		t.Fatalf("inverted span must have zero length")
	}
}
