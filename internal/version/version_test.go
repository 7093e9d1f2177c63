package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func withPlainColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func withVersion(t *testing.T, v, commit, date string) {
	t.Helper()
	ov, oc, od := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = ov, oc, od })
}

func TestColoredKeepsText(t *testing.T) {
	withPlainColor(t)
	cases := []string{"0.1.0-dev", "1.2.3", "1.0.0-beta.1", "weird"}
	for _, v := range cases {
		withVersion(t, v, "", "")
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestStringIncludesBuildInfo(t *testing.T) {
	withPlainColor(t)
	withVersion(t, "1.2.3", "1234567890abcdef", "2024-01-15")

	got := String()
	want := "hellomacro 1.2.3 (1234567890ab) built 2024-01-15 " + runtime.GOOS + "/" + runtime.GOARCH
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringWithoutOptionalFields(t *testing.T) {
	withPlainColor(t)
	withVersion(t, "0.1.0-dev", "", "")

	got := String()
	if strings.Contains(got, "(") || strings.Contains(got, "built") {
		t.Fatalf("unexpected optional fields in %q", got)
	}
}
