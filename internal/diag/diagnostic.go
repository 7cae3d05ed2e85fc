package diag

import (
	"rlint/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Applicability classifies whether a fix is behavior-preserving.
type Applicability uint8

const (
	// FixSafe fixes are applied by default.
	FixSafe Applicability = iota
	// FixUnsafe fixes need an explicit opt-in because they may change
	// observable behavior in edge cases.
	FixUnsafe
)

func (a Applicability) String() string {
	switch a {
	case FixSafe:
		return "safe"
	case FixUnsafe:
		return "unsafe"
	default:
		return "invalid"
	}
}

// Fix is a single text replacement resolving a diagnostic. Span is always in
// the coordinates of the original, unmodified file the diagnostic was
// produced from; the patch engine translates it while applying earlier fixes.
type Fix struct {
	Title         string
	Span          source.Span
	NewText       string
	Skip          bool // flagged range contains comments; never auto-apply
	Applicability Applicability
}

// Diagnostic is a single finding with location and an optional fix.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fix      *Fix
}

// HasFix reports whether a non-skipped fix is attached.
func (d Diagnostic) HasFix() bool {
	return d.Fix != nil && !d.Fix.Skip
}
