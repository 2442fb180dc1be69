package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring only, dumped for failed files
	LevelPhase        // the driver span
	LevelDetail       // plus one span per file
	LevelDebug        // plus parse and reorder passes
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// levelDepth is the finest scope a level lets through.
var levelDepth = [...]Scope{
	LevelOff:    0,
	LevelError:  ScopeFile,
	LevelPhase:  ScopeDriver,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopePass,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelDepth) || scope == 0 {
		return false
	}
	return scope <= levelDepth[l]
}
