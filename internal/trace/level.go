package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // failed sites only
	LevelPhase               // driver boundaries
	LevelDetail              // per-file events
	LevelDebug               // per-site events
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether an event of scope passes this level.
// Error events pass every level except off.
func (l Level) ShouldEmit(scope Scope, kind Kind) bool {
	switch {
	case l == LevelOff:
		return false
	case kind == KindError:
		return true
	case l == LevelError:
		return false
	case l == LevelPhase:
		return scope <= ScopeDriver
	case l == LevelDetail:
		return scope <= ScopeFile
	default:
		return true
	}
}
