package diag

import (
	"fmt"
	"sort"
	"strings"

	"rlint/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable,
// single-line-per-entry representation suitable for golden comparisons in
// tests and for CLI short output.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		start, _ := fs.Resolve(d.Primary)
		rendered = append(rendered, goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.String(),
			Path:     fs.Get(d.Primary.File).FormatPath("relative", fs.BaseDir()),
			Line:     start.Line,
			Column:   start.Col,
			Message:  d.Message,
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for _, g := range rendered {
		fmt.Fprintf(&b, "%s:%d:%d: %s [%s] %s\n", g.Path, g.Line, g.Column, g.Severity, g.Code, g.Message)
	}
	return b.String()
}
