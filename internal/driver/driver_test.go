package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rlint/internal/diag"
	"rlint/internal/project"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestSession(root string, opts Options) *Session {
	opts.NoCache = true
	return NewSession(project.Manifest{Root: root, Config: project.Default()}, opts)
}

func TestCheckPathsSortedResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "c.R", "x = 1\nprint(x)\n")
	writeFile(t, dir, "a.R", "y <- 1\nprint(y)\n")
	writeFile(t, dir, "b.R", "z = 2\nprint(z)\n")

	s := newTestSession(dir, Options{Jobs: 4})
	_, results, err := s.CheckPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	want := []string{"a.R", "b.R", "c.R"}
	for i, res := range results {
		if filepath.Base(res.Path) != want[i] {
			t.Errorf("result %d = %s, want %s", i, filepath.Base(res.Path), want[i])
		}
	}
	if results[0].Bag.Len() != 0 {
		t.Errorf("a.R should be clean, got %d findings", results[0].Bag.Len())
	}
	if results[1].Bag.Len() != 1 || results[2].Bag.Len() != 1 {
		t.Errorf("b.R and c.R should each have one finding, got %d and %d",
			results[1].Bag.Len(), results[2].Bag.Len())
	}
}

func TestCheckPathsGolden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "x = 1\nprint(x)\n")

	s := newTestSession(dir, Options{})
	fs, results, err := s.CheckPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	var all []diag.Diagnostic
	for _, res := range results {
		all = append(all, res.Bag.Items()...)
	}
	got := diag.FormatGoldenDiagnostics(all, fs)
	want := "a.R:1:3: WARNING [assignment_op] use <-, not =, for assignment\n"
	if got != want {
		t.Errorf("golden output:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckPathsLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.R", "print(1)\n")
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.R")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	s := newTestSession(dir, Options{})
	_, results, err := s.CheckPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	broken := results[0]
	if filepath.Base(broken.Path) != "broken.R" {
		t.Fatalf("first result = %s", broken.Path)
	}
	if !broken.Bag.HasErrors() {
		t.Error("load failure should produce an error diagnostic")
	}
	if broken.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Errorf("code = %v, want IOLoadFileError", broken.Bag.Items()[0].Code)
	}
	if results[1].Bag.HasErrors() {
		t.Error("the healthy file must still be checked")
	}
}

func TestCheckPathsHonorsExcludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.R", "print(1)\n")
	writeFile(t, dir, filepath.Join("renv", "activate.R"), "x = 1\n")

	m := project.Manifest{Root: dir, Config: project.Default()}
	m.Config.Lint.Exclude = []string{"renv"}
	s := NewSession(m, Options{NoCache: true})

	_, results, err := s.CheckPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "keep.R" {
		t.Errorf("results = %v, want only keep.R", results)
	}
}

func TestExplicitFileBypassesExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "script.txt", "x = 1\nprint(x)\n")

	s := newTestSession(dir, Options{})
	_, results, err := s.CheckPaths(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Bag.Len() != 1 {
		t.Fatalf("an explicitly named file must be checked regardless of extension: %+v", results)
	}
}

func TestCheckPathsEmptyDir(t *testing.T) {
	s := newTestSession(t.TempDir(), Options{})
	_, results, err := s.CheckPaths(context.Background(), []string{s.Manifest.Root})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestCheckPathsProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "print(1)\n")
	writeFile(t, dir, "b.R", "print(2)\n")

	s := newTestSession(dir, Options{Jobs: 1})
	events := make(chan ProgressEvent, 16)
	s.SetProgress(func(ev ProgressEvent) { events <- ev })

	if _, _, err := s.CheckPaths(context.Background(), []string{dir}); err != nil {
		t.Fatal(err)
	}
	close(events)

	done := map[string]bool{}
	for ev := range events {
		if ev.State == ProgressDone {
			done[filepath.Base(ev.Path)] = true
		}
	}
	if !done["a.R"] || !done["b.R"] {
		t.Errorf("missing ProgressDone events: %v", done)
	}
}

func TestFixFileConverges(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x = 1\nprint(x)\n")

	s := newTestSession(dir, Options{})
	out, err := s.FixFile(path, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Changed || out.Applied != 1 {
		t.Errorf("changed = %v, applied = %d", out.Changed, out.Applied)
	}
	if string(out.Fixed) != "x <- 1\nprint(x)\n" {
		t.Errorf("fixed = %q", out.Fixed)
	}
	if out.Bag.Len() != 0 {
		t.Errorf("converged file should be clean, got %d findings", out.Bag.Len())
	}
	if out.LimitHit {
		t.Error("one fix must not hit the pass limit")
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != "x <- 1\nprint(x)\n" {
		t.Errorf("disk content = %q", onDisk)
	}
}

func TestFixFileDryRun(t *testing.T) {
	dir := t.TempDir()
	const src = "x = 1\nprint(x)\n"
	path := writeFile(t, dir, "a.R", src)

	s := newTestSession(dir, Options{})
	out, err := s.FixFile(path, false, true)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Changed || string(out.Fixed) != "x <- 1\nprint(x)\n" {
		t.Errorf("dry run must still compute the fix: %q", out.Fixed)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != src {
		t.Errorf("dry run rewrote the file: %q", onDisk)
	}
}

func TestFixFileCleanInputUntouched(t *testing.T) {
	dir := t.TempDir()
	const src = "x <- 1\nprint(x)\n"
	path := writeFile(t, dir, "a.R", src)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	before := info.ModTime()

	s := newTestSession(dir, Options{})
	out, err := s.FixFile(path, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if out.Changed || out.Applied != 0 || out.Passes != 1 {
		t.Errorf("clean input: changed = %v, applied = %d, passes = %d",
			out.Changed, out.Applied, out.Passes)
	}
	info, err = os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(before) {
		t.Error("a clean file must not be rewritten")
	}
}

func TestFixPathsBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "x = 1\nprint(x)\n")
	writeFile(t, dir, "b.R", "y <- 2\nprint(y)\n")

	s := newTestSession(dir, Options{Jobs: 2})
	outcomes, err := s.FixPaths(context.Background(), []string{dir}, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 2 {
		t.Fatalf("outcomes = %d, want 2", len(outcomes))
	}
	if filepath.Base(outcomes[0].Path) != "a.R" || outcomes[0].Applied != 1 {
		t.Errorf("a.R: %+v", outcomes[0])
	}
	if outcomes[1].Changed {
		t.Error("b.R was already clean")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c := &DiskCache{dir: t.TempDir()}
	key := project.HashBytes([]byte("content"))

	var miss CachePayload
	ok, err := c.Get(key, &miss)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("empty cache must miss")
	}

	payload := &CachePayload{
		Schema: cacheSchemaVersion,
		Diags: []CachedDiag{{
			Severity: uint8(diag.SevWarning),
			Code:     uint16(diag.LintAssignmentOp),
			Message:  "use <-, not =, for assignment",
			Start:    2,
			End:      3,
		}},
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatal(err)
	}

	var got CachePayload
	ok, err = c.Get(key, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("stored entry must hit")
	}
	if len(got.Diags) != 1 || got.Diags[0].Message != payload.Diags[0].Message {
		t.Errorf("payload = %+v", got)
	}

	bag := got.toBag(1, 10)
	if bag == nil || bag.Len() != 1 {
		t.Fatalf("toBag = %v", bag)
	}
	d := bag.Items()[0]
	if d.Code != diag.LintAssignmentOp || d.Primary.Start != 2 || d.Primary.End != 3 {
		t.Errorf("rematerialized diagnostic = %+v", d)
	}
}

func TestStaleCacheSchemaIgnored(t *testing.T) {
	p := &CachePayload{Schema: cacheSchemaVersion + 1}
	if p.toBag(1, 10) != nil {
		t.Error("a stale schema must force a recompute")
	}
}

func TestCheckPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.R", "x = 1\nprint(x)\n")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	m := project.Manifest{Root: dir, Config: project.Default()}

	first := NewSession(m, Options{})
	_, results, err := first.CheckPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Cached {
		t.Fatal("a cold cache cannot hit")
	}

	second := NewSession(m, Options{})
	_, results, err = second.CheckPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Cached {
		t.Error("identical content and config should hit the cache")
	}
	if results[0].Bag.Len() != 1 {
		t.Errorf("cached findings = %d, want 1", results[0].Bag.Len())
	}
}
