// Package driver wires the pipeline together: load, parse, build the
// semantic model, run the checker, and (for fix) drive the patch loop. It is
// the only package that knows the order of the phases; everything below it
// works on one concern.
package driver

import (
	"fmt"

	"fortio.org/safecast"

	"rlint/internal/checker"
	"rlint/internal/diag"
	"rlint/internal/observ"
	"rlint/internal/parser"
	"rlint/internal/project"
	"rlint/internal/rules"
	"rlint/internal/sema"
	"rlint/internal/source"
	"rlint/internal/suppress"
	"rlint/internal/syntax"
	"rlint/internal/trace"
)

// Options tunes a session. Zero values mean sensible defaults.
type Options struct {
	MaxDiagnostics int  // per-file diagnostic cap, 0: 1000
	Jobs           int  // parallel workers, 0: GOMAXPROCS
	Timings        bool // collect per-phase timings
	NoCache        bool // bypass the on-disk result cache
	// Progress receives per-file lifecycle events during batch runs. May be
	// nil; called from worker goroutines, so implementations must be
	// concurrency-safe.
	Progress func(ProgressEvent)
	// Tracer receives batch/file/phase spans. Nil disables tracing.
	Tracer trace.Tracer
}

// ProgressState is a file's position in a batch run.
type ProgressState uint8

const (
	ProgressStart ProgressState = iota
	ProgressDone
	ProgressFailed
)

// ProgressEvent is one batch lifecycle notification.
type ProgressEvent struct {
	Path  string
	State ProgressState
	Note  string
}

// SetProgress installs the progress callback after construction. Call it
// before the batch starts; the session does not synchronize the swap.
func (s *Session) SetProgress(fn func(ProgressEvent)) {
	s.opts.Progress = fn
}

func (s *Session) notify(path string, state ProgressState, note string) {
	if s.opts.Progress != nil {
		s.opts.Progress(ProgressEvent{Path: path, State: state, Note: note})
	}
}

const defaultMaxDiagnostics = 1000

// Session holds everything shared between the files of one run. It is
// immutable after New and safe for concurrent workers.
type Session struct {
	Manifest project.Manifest
	Interner *source.Interner

	chk      *checker.Checker
	globals  map[source.StringID]struct{}
	ruleOpts rules.Options
	opts     Options
	cache    *DiskCache
}

// NewSession prepares a run under the given project config.
func NewSession(manifest project.Manifest, opts Options) *Session {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	interner := source.NewInterner()
	s := &Session{
		Manifest: manifest,
		Interner: interner,
		chk:      checker.New(manifest.Config.Enabled(rules.Names())),
		globals:  sema.DefaultGlobals(interner, manifest.Config.Lint.Globals),
		ruleOpts: rules.Options{
			AssignmentStyle: manifest.Config.Lint.AssignmentOp.Style,
			UnusedExclude:   manifest.Config.Lint.UnusedBinding.Exclude,
		},
		opts: opts,
	}
	if !opts.NoCache {
		// A missing cache dir is not fatal; the run just recomputes.
		s.cache, _ = OpenDiskCache("rlint")
	}
	return s
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tree   *syntax.Tree // nil on a cache hit or load failure
	Bag    *diag.Bag
	Timing *observ.Report
	Cached bool
}

// checkLoaded runs the per-file pipeline over an already-loaded file. A nil
// timer disables phase timing; parent links phase spans to the caller's
// trace span.
func (s *Session) checkLoaded(fs *source.FileSet, fileID source.FileID, timer *observ.Timer, parent uint64) (*syntax.Tree, *diag.Bag, error) {
	file := fs.Get(fileID)
	bag := diag.NewBag(s.opts.MaxDiagnostics)

	maxErrors, err := safecast.Conv[uint](s.opts.MaxDiagnostics)
	if err != nil {
		return nil, bag, fmt.Errorf("max diagnostics overflow: %w", err)
	}

	phase := timer.Begin("parse")
	sp := trace.Begin(s.opts.Tracer, trace.ScopePhase, "parse", parent)
	tree := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	note := fmt.Sprintf("%d nodes", tree.Len())
	timer.End(phase, note)
	sp.End(note)

	phase = timer.Begin("sema")
	sp = trace.Begin(s.opts.Tracer, trace.ScopePhase, "sema", parent)
	sup := suppress.BuildIndex(fs, fileID, tree.Comments())
	events := sema.ExtractEvents(tree, s.Interner)
	model := sema.BuildModel(events, s.Interner, s.globals)
	note = fmt.Sprintf("%d scopes", len(model.Scopes)-1)
	timer.End(phase, note)
	sp.End(note)

	phase = timer.Begin("check")
	sp = trace.Begin(s.opts.Tracer, trace.ScopePhase, "check", parent)
	rctx := &rules.Context{
		FS:      fs,
		Tree:    tree,
		Model:   model,
		Options: s.ruleOpts,
	}
	if err := s.chk.Run(rctx, sup, bag); err != nil {
		timer.End(phase, "failed")
		sp.End("failed")
		return tree, bag, fmt.Errorf("%s: %w", file.Path, err)
	}
	note = fmt.Sprintf("%d findings", bag.Len())
	timer.End(phase, note)
	sp.End(note)

	bag.Sort()
	bag.Dedup()
	return tree, bag, nil
}

// checkTimed is checkLoaded plus a timing report when the session asks for
// one.
func (s *Session) checkTimed(fs *source.FileSet, fileID source.FileID, parent uint64) (*syntax.Tree, *diag.Bag, *observ.Report, error) {
	if !s.opts.Timings {
		tree, bag, err := s.checkLoaded(fs, fileID, nil, parent)
		return tree, bag, nil, err
	}
	timer := observ.NewTimer()
	tree, bag, err := s.checkLoaded(fs, fileID, timer, parent)
	report := timer.Report()
	return tree, bag, &report, err
}

func ioDiagnostic(code diag.Code, err error) diag.Diagnostic {
	return diag.NewError(code, source.Span{}, err.Error())
}
