package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"rlint/internal/diag"
	"rlint/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("script.R", []byte("x = 1\nprint(x)\n"))

	bag := diag.NewBag(10)
	d := diag.NewWarning(diag.LintAssignmentOp,
		source.Span{File: id, Start: 2, End: 3},
		"use <-, not =, for assignment").
		WithFix(diag.Fix{
			Title:   "replace = with <-",
			Span:    source.Span{File: id, Start: 2, End: 3},
			NewText: "<-",
		})
	bag.Add(d)
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true})
	out := buf.String()

	wantHeader := "script.R:1:3: WARNING[assignment_op] use <-, not =, for assignment"
	if !strings.Contains(out, wantHeader) {
		t.Errorf("missing header line, got:\n%s", out)
	}
	if !strings.Contains(out, "    1 | x = 1") {
		t.Errorf("missing gutter line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret, got:\n%s", out)
	}
	if !strings.Contains(out, "fix: replace = with <-") {
		t.Errorf("missing fix label, got:\n%s", out)
	}
	// Plain mode must not leak ANSI escapes.
	if strings.Contains(out, "\x1b[") {
		t.Errorf("uncolored output contains escape codes:\n%s", out)
	}
}

func TestCaretAlignment(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	lines := strings.Split(buf.String(), "\n")
	var gutterLine, caretLine string
	for i, line := range lines {
		if strings.Contains(line, "| x = 1") && i+1 < len(lines) {
			gutterLine = line
			caretLine = lines[i+1]
		}
	}
	if gutterLine == "" {
		t.Fatalf("no source line in output:\n%s", buf.String())
	}
	// The caret must sit under the "=", which is two display columns after
	// the gutter's x.
	wantCol := strings.Index(gutterLine, "=")
	gotCol := strings.Index(caretLine, "^")
	if wantCol != gotCol {
		t.Errorf("caret at column %d, want %d:\n%s\n%s", gotCol, wantCol, gutterLine, caretLine)
	}
}

func TestJSONShape(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "RL3001" || d.Rule != "assignment_op" {
		t.Errorf("code = %q, rule = %q", d.Code, d.Rule)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 3 {
		t.Errorf("location = %+v", d.Location)
	}
	if d.Fix == nil || d.Fix.NewText != "<-" || d.Fix.OldText != "=" {
		t.Errorf("fix = %+v", d.Fix)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("script.R", []byte("a = 1\nb = 2\nc = 3\n"))
	bag := diag.NewBag(10)
	for _, off := range []uint32{2, 8, 14} {
		bag.Add(diag.NewWarning(diag.LintAssignmentOp,
			source.Span{File: id, Start: off, End: off + 1}, "use <-"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("count = %d, want 2", out.Count)
	}
}

func TestSarifShape(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	if err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "rlint", ToolVersion: "0.1.0"}); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc["version"] != "2.1.0" {
		t.Errorf("version = %v", doc["version"])
	}
	runs, ok := doc["runs"].([]any)
	if !ok || len(runs) != 1 {
		t.Fatalf("runs = %v", doc["runs"])
	}
	run := runs[0].(map[string]any)
	results, ok := run["results"].([]any)
	if !ok || len(results) != 1 {
		t.Fatalf("results = %v", run["results"])
	}
	result := results[0].(map[string]any)
	if result["ruleId"] != "RL3001" {
		t.Errorf("ruleId = %v", result["ruleId"])
	}
	if result["level"] != "warning" {
		t.Errorf("level = %v", result["level"])
	}
}
