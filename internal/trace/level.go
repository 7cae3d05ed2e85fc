package trace

import (
	"fmt"
	"strings"
)

// Level caps how fine-grained the emitted events get.
type Level uint8

const (
	LevelOff   Level = iota
	LevelBatch       // batch boundaries only
	LevelFile        // plus per-file spans
	LevelPhase       // plus parse/sema/check phases
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelBatch:
		return "batch"
	case LevelFile:
		return "file"
	case LevelPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "batch":
		return LevelBatch, nil
	case "file":
		return LevelFile, nil
	case "phase":
		return LevelPhase, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|batch|file|phase)", s)
	}
}

// ShouldEmit reports whether events at scope pass this level's filter.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelBatch:
		return scope <= ScopeBatch
	case LevelFile:
		return scope <= ScopeFile
	case LevelPhase:
		return true
	}
	return false
}
