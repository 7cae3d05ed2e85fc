package trace

import "time"

// Kind distinguishes span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser; the level
// filter compares against it.
type Scope uint8

const (
	ScopeBatch Scope = iota + 1 // one check or fix invocation
	ScopeFile                   // one file inside the batch
	ScopePhase                  // parse, sema, check inside a file
)

func (s Scope) String() string {
	switch s {
	case ScopeBatch:
		return "batch"
	case ScopeFile:
		return "file"
	case ScopePhase:
		return "phase"
	default:
		return "unknown"
	}
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // monotonic, assigned at emit
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for root spans
	GID      uint64 // goroutine, separates concurrent file spans
	Name     string // "check", "a.R", "parse", ...
	Detail   string
	Extra    map[string]string
}
