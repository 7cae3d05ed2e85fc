package trace

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"off", LevelOff, true},
		{"batch", LevelBatch, true},
		{"FILE", LevelFile, true},
		{"phase", LevelPhase, true},
		{"verbose", LevelOff, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	if LevelBatch.ShouldEmit(ScopeFile) {
		t.Error("batch level must drop file spans")
	}
	if !LevelFile.ShouldEmit(ScopeBatch) {
		t.Error("finer levels include coarser scopes")
	}
	if !LevelPhase.ShouldEmit(ScopePhase) {
		t.Error("phase level includes everything")
	}
	if LevelOff.ShouldEmit(ScopeBatch) {
		t.Error("off emits nothing")
	}
}

func TestSpanBeginEndPair(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)

	batch := Begin(tr, ScopeBatch, "check", 0)
	file := Begin(tr, ScopeFile, "a.R", batch.ID())
	file.WithExtra("findings", "2").End("done")
	batch.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("events = %d, want 4:\n%s", len(lines), buf.String())
	}

	var ev struct {
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		SpanID   uint64            `json:"span_id"`
		ParentID uint64            `json:"parent_id"`
		Name     string            `json:"name"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "begin" || ev.Scope != "file" || ev.Name != "a.R" {
		t.Errorf("file begin = %+v", ev)
	}
	if ev.ParentID != batch.ID() {
		t.Errorf("parent = %d, want %d", ev.ParentID, batch.ID())
	}

	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Extra["findings"] != "2" {
		t.Errorf("file end = %+v", ev)
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelBatch, FormatNDJSON)

	Begin(tr, ScopeBatch, "check", 0).End("")
	Begin(tr, ScopePhase, "parse", 0).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("events = %d, want only the batch pair:\n%s", len(lines), buf.String())
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	Begin(tr, ScopePhase, "parse", 7).End("12 nodes")

	out := buf.String()
	if !strings.Contains(out, "> parse") || !strings.Contains(out, "< parse (12 nodes)") {
		t.Errorf("text output:\n%s", out)
	}
}

func TestNopSpanIsInert(t *testing.T) {
	sp := Begin(Nop, ScopeBatch, "check", 0)
	if sp.ID() != 0 {
		t.Error("nop span must not allocate an ID")
	}
	if sp.End("detail") != 0 {
		t.Error("nop span End returns zero duration")
	}
	sp.WithExtra("k", "v") // must not panic

	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Error("nil span must be safe")
	}
}

func TestNewRespectsLevelOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr != Nop {
		t.Error("off config must return the nop tracer")
	}
}

func TestNewAutoFormat(t *testing.T) {
	dir := t.TempDir()
	tr, err := New(Config{Level: LevelFile, OutputPath: dir + "/run.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	st, ok := tr.(*StreamTracer)
	if !ok {
		t.Fatalf("tracer = %T", tr)
	}
	if st.format != FormatNDJSON {
		t.Errorf("format = %v, want NDJSON for .ndjson paths", st.format)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}
