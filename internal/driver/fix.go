package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rlint/internal/diag"
	"rlint/internal/fix"
	"rlint/internal/source"
	"rlint/internal/trace"
)

// FixOutcome describes one file after the fix loop.
type FixOutcome struct {
	Path     string
	Fixed    []byte
	Changed  bool
	Passes   int
	Applied  int
	LimitHit bool
	// Bag holds the diagnostics of the final text: findings with no fix,
	// skipped fixes, and the loop-limit marker when the cap was hit.
	Bag    *diag.Bag
	FS     *source.FileSet // resolves Bag's spans
	FileID source.FileID   // final revision
}

// FixFile runs the lint-patch-relint loop on one file and, unless dryRun,
// writes the converged text back in place with the original permissions.
//
// Every revision of the text becomes its own virtual file in a private
// FileSet, so diagnostics from different passes never mix coordinates.
func (s *Session) FixFile(path string, allowUnsafe, dryRun bool) (FixOutcome, error) {
	return s.fixFile(path, allowUnsafe, dryRun, 0)
}

func (s *Session) fixFile(path string, allowUnsafe, dryRun bool, parent uint64) (FixOutcome, error) {
	out := FixOutcome{Path: path}

	sp := trace.Begin(s.opts.Tracer, trace.ScopeFile, path, parent)

	fileSet := source.NewFileSetWithBase(s.Manifest.Root)
	fileID, err := fileSet.Load(path)
	if err != nil {
		sp.End("load failed")
		return out, fmt.Errorf("failed to load %s: %w", path, err)
	}
	original := fileSet.Get(fileID).Content

	lint := func(text []byte) ([]diag.Diagnostic, error) {
		revID := fileSet.AddVirtual(path, text)
		_, bag, err := s.checkLoaded(fileSet, revID, nil, sp.ID())
		if err != nil {
			return nil, err
		}
		return bag.Items(), nil
	}

	summary, err := fix.Run(original, lint, allowUnsafe)
	if err != nil {
		sp.End("failed")
		return out, err
	}

	// One more pass over the converged text for the remaining findings.
	finalID := fileSet.AddVirtual(path, summary.Text)
	_, bag, err := s.checkLoaded(fileSet, finalID, nil, sp.ID())
	if err != nil {
		sp.End("failed")
		return out, err
	}
	if summary.LimitHit {
		bag.Add(diag.NewWarning(diag.FixLoopLimit,
			source.Span{File: finalID},
			fmt.Sprintf("fix loop did not converge after %d passes; remaining fixes left unapplied", fix.MaxPasses)))
	}

	out.Fixed = summary.Text
	out.Changed = summary.Applied > 0
	out.Passes = summary.Passes
	out.Applied = summary.Applied
	out.LimitHit = summary.LimitHit
	out.Bag = bag
	out.FS = fileSet
	out.FileID = finalID

	if out.Changed && !dryRun {
		if err := writeBack(path, summary.Text); err != nil {
			sp.End("write failed")
			return out, err
		}
	}
	sp.End(fmt.Sprintf("%d applied in %d passes", out.Applied, out.Passes))
	return out, nil
}

// writeBack replaces path's content, preserving its mode.
func writeBack(path string, text []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, text, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FixPaths fixes every R file under paths in parallel. Results come back in
// sorted file order; a failed file carries its error in the outcome rather
// than aborting the batch.
func (s *Session) FixPaths(ctx context.Context, paths []string, allowUnsafe, dryRun bool) ([]FixOutcome, error) {
	files, err := s.listRFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]FixOutcome, len(files))

	batch := trace.Begin(s.opts.Tracer, trace.ScopeBatch, "fix", 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			s.notify(path, ProgressStart, "")
			outcome, err := s.fixFile(path, allowUnsafe, dryRun, batch.ID())
			if err != nil {
				bag := diag.NewBag(s.opts.MaxDiagnostics)
				bag.Add(ioDiagnostic(diag.IOWriteFileError, err))
				outcome.Bag = bag
				outcomes[i] = outcome
				s.notify(path, ProgressFailed, "failed")
				return nil
			}
			outcomes[i] = outcome
			note := "clean"
			if outcome.Applied > 0 {
				note = fmt.Sprintf("%d fixed", outcome.Applied)
			}
			s.notify(path, ProgressDone, note)
			return nil
		})
	}

	err = g.Wait()
	batch.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
