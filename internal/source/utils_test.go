package source

import "testing"

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		changed bool
	}{
		{"a\nb", "a\nb", false},
		{"a\r\nb\r\n", "a\nb\n", true},
		{"a\rb", "a\rb", false},
	}
	for _, tt := range tests {
		got, changed := normalizeCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("normalizeCRLF(%q) = %q,%v want %q,%v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestRemoveBOM(t *testing.T) {
	got, ok := removeBOM([]byte("\xEF\xBB\xBFstruct"))
	if !ok || string(got) != "struct" {
		t.Fatalf("removeBOM = %q,%v", got, ok)
	}
	got, ok = removeBOM([]byte("st"))
	if ok || string(got) != "st" {
		t.Fatalf("short input changed: %q,%v", got, ok)
	}
}

func TestToLineColEmptyIndex(t *testing.T) {
	if got := toLineCol(nil, 4); got != (LineCol{1, 5}) {
		t.Fatalf("toLineCol = %+v", got)
	}
}
