package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rlint/internal/diag"
	"rlint/internal/source"
)

// Pretty renders diagnostics for terminals. Expects bag.Sort() beforehand.
// Each diagnostic prints as
//
//	path:line:col: severity[rule_name] message
//	   42 | x = f(y)
//	      |   ^~
//
// followed by notes and the fix title when requested.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := formatPath(file, fs, opts.PathMode)

	sev := d.Severity.String()
	header := fmt.Sprintf("%s[%s]", sev, d.Code.String())
	if opts.Color {
		header = severityColor(d.Severity).Sprintf("%s[%s]", sev, d.Code.String())
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s\n", path, start.Line, start.Col, header, d.Message)

	writeSourceLine(w, file, start, end, opts)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			nStart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", note.Msg, path, nStart.Line, nStart.Col)
		}
	}
	if opts.ShowFixes && d.Fix != nil {
		label := "fix"
		switch {
		case d.Fix.Skip:
			label = "fix (not auto-applied: surrounding comments)"
		case d.Fix.Applicability == diag.FixUnsafe:
			label = "fix (unsafe, needs --unsafe)"
		}
		fmt.Fprintf(w, "  %s: %s\n", label, d.Fix.Title)
	}
}

// writeSourceLine prints the offending line with a caret run underneath.
// Caret placement accounts for display width, so multibyte identifiers and
// wide runes stay aligned.
func writeSourceLine(w io.Writer, file *source.File, start, end source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" && start.Col == 1 && end.Col == 1 {
		return
	}

	gutter := fmt.Sprintf("%5d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, strings.ReplaceAll(line, "\t", " "))

	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol <= startCol {
		endCol = startCol + 1
	}
	if startCol > len(line)+1 {
		return
	}

	pad := runewidth.StringWidth(sliceCols(line, 1, startCol))
	width := runewidth.StringWidth(sliceCols(line, startCol, endCol))
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = color.New(color.FgHiGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), marker)
}

// sliceCols returns the byte range of line between 1-based columns [from, to).
func sliceCols(line string, from, to int) string {
	if from < 1 {
		from = 1
	}
	if to > len(line)+1 {
		to = len(line) + 1
	}
	if to <= from {
		return ""
	}
	return line[from-1 : to-1]
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
