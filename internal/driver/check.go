package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rlint/internal/diag"
	"rlint/internal/project"
	"rlint/internal/source"
	"rlint/internal/trace"
)

// listRFiles returns every .R/.r file under each of paths, sorted for a
// deterministic result order. Paths naming a file directly bypass the
// extension filter and the config excludes: an explicit argument means the
// user wants that file checked.
func (s *Session) listRFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if s.excluded(p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if strings.HasSuffix(p, ".R") || strings.HasSuffix(p, ".r") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// ListFiles exposes the batch file list, in the order results will come
// back. The progress UI seeds its rows from this.
func (s *Session) ListFiles(paths []string) ([]string, error) {
	return s.listRFiles(paths)
}

func (s *Session) excluded(path string) bool {
	rel, err := filepath.Rel(s.Manifest.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return s.Manifest.Excluded(rel)
}

// CheckPaths checks every R file under paths in parallel. The returned
// results are in sorted file order regardless of scheduling; a file that
// fails to load contributes an I/O diagnostic instead of aborting the batch.
func (s *Session) CheckPaths(ctx context.Context, paths []string) (*source.FileSet, []FileResult, error) {
	files, err := s.listRFiles(paths)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(s.Manifest.Root)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Preload serially: FileSet mutates on Add, workers only read.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := s.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexed results: each worker owns its slot, no mutex needed.
	results := make([]FileResult, len(files))

	batch := trace.Begin(s.opts.Tracer, trace.ScopeBatch, "check", 0)

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

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(s.opts.MaxDiagnostics)
				bag.Add(ioDiagnostic(diag.IOLoadFileError, loadErr))
				results[i] = FileResult{Path: path, Bag: bag}
				s.notify(path, ProgressFailed, "load failed")
				return nil
			}

			s.notify(path, ProgressStart, "")
			sp := trace.Begin(s.opts.Tracer, trace.ScopeFile, path, batch.ID())
			fileID := fileIDs[path]
			results[i] = s.checkCached(fileSet, path, fileID, sp.ID())
			note := fmt.Sprintf("%d findings", results[i].Bag.Len())
			if results[i].Cached {
				sp.WithExtra("cached", "true")
			}
			sp.End(note)
			s.notify(path, ProgressDone, note)
			return nil
		})
	}

	err = g.Wait()
	batch.End(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// checkCached consults the on-disk cache before running the pipeline. The
// key combines the file's content hash with the config fingerprint, so
// either changing invalidates the entry.
func (s *Session) checkCached(fileSet *source.FileSet, path string, fileID source.FileID, parent uint64) FileResult {
	file := fileSet.Get(fileID)
	key := project.Combine(project.Digest(file.Hash), s.Manifest.Config.Fingerprint())

	if s.cache != nil {
		var payload CachePayload
		if ok, err := s.cache.Get(key, &payload); err == nil && ok {
			bag := payload.toBag(fileID, s.opts.MaxDiagnostics)
			if bag != nil {
				return FileResult{Path: path, FileID: fileID, Bag: bag, Cached: true}
			}
		}
	}

	tree, bag, timing, err := s.checkTimed(fileSet, fileID, parent)
	if err != nil {
		bag.Add(ioDiagnostic(diag.CheckFailed, err))
		return FileResult{Path: path, FileID: fileID, Tree: tree, Bag: bag, Timing: timing}
	}

	if s.cache != nil {
		// Best effort; a full disk never fails the check.
		_ = s.cache.Put(key, newCachePayload(bag))
	}
	return FileResult{Path: path, FileID: fileID, Tree: tree, Bag: bag, Timing: timing}
}

// CheckFile checks a single file, loading it into fs.
func (s *Session) CheckFile(fs *source.FileSet, path string) FileResult {
	fileID, err := fs.Load(path)
	if err != nil {
		bag := diag.NewBag(s.opts.MaxDiagnostics)
		bag.Add(ioDiagnostic(diag.IOLoadFileError, err))
		return FileResult{Path: path, Bag: bag}
	}
	tree, bag, timing, err := s.checkTimed(fs, fileID, 0)
	if err != nil {
		bag.Add(ioDiagnostic(diag.CheckFailed, err))
	}
	return FileResult{Path: path, FileID: fileID, Tree: tree, Bag: bag, Timing: timing}
}
