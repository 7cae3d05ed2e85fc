package suppress

import (
	"strings"

	"rlint/internal/source"
	"rlint/internal/token"
)

// ruleSet is the set of rule names a directive covers; nil means all rules.
type ruleSet map[string]struct{}

func (rs ruleSet) covers(rule string) bool {
	if rs == nil {
		return true
	}
	_, ok := rs[rule]
	return ok
}

type block struct {
	startLine uint32
	endLine   uint32 // 0: open to end of file
	rules     ruleSet
}

// Index answers "is this rule disabled at this location" queries, built once
// per file from the comments the lossless tree retained.
//
// Recognized directives:
//
//	# nolint                  suppress every rule on this line
//	# nolint: name1, name2    suppress the named rules on this line
//	# nolint start[: names]   open a suppression block
//	# nolint end              close the innermost block
type Index struct {
	fs     *source.FileSet
	lines  map[uint32]ruleSet
	blocks []block
}

// BuildIndex scans comment trivia for suppression directives.
func BuildIndex(fs *source.FileSet, fileID source.FileID, comments []token.Trivia) *Index {
	ix := &Index{
		fs:    fs,
		lines: make(map[uint32]ruleSet),
	}

	var open []int // indices into ix.blocks of unclosed start directives
	for _, c := range comments {
		// The fix loop keeps several revisions of a path in one FileSet;
		// only this revision's comments may contribute directives.
		if c.Span.File != fileID {
			continue
		}
		text, ok := directiveText(c.Text)
		if !ok {
			continue
		}
		start, _ := fs.Resolve(c.Span)

		switch {
		case strings.HasPrefix(text, "start"):
			rules := parseRuleList(strings.TrimPrefix(text, "start"))
			ix.blocks = append(ix.blocks, block{startLine: start.Line, rules: rules})
			open = append(open, len(ix.blocks)-1)

		case strings.HasPrefix(text, "end"):
			if len(open) > 0 {
				ix.blocks[open[len(open)-1]].endLine = start.Line
				open = open[:len(open)-1]
			}

		default:
			rules := parseRuleList(text)
			ix.mergeLine(start.Line, rules)
		}
	}
	return ix
}

// ShouldSkip reports whether rule is suppressed for a finding at span.
func (ix *Index) ShouldSkip(span source.Span, rule string) bool {
	if ix == nil {
		return false
	}
	start, _ := ix.fs.Resolve(span)

	if rules, ok := ix.lines[start.Line]; ok && rules.covers(rule) {
		return true
	}
	for _, b := range ix.blocks {
		if start.Line < b.startLine {
			continue
		}
		if b.endLine != 0 && start.Line > b.endLine {
			continue
		}
		if b.rules.covers(rule) {
			return true
		}
	}
	return false
}

// directiveText strips the comment leader and returns the directive payload
// after the "nolint" marker, or ok=false for ordinary comments.
func directiveText(comment string) (string, bool) {
	text := strings.TrimLeft(comment, "#")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "nolint") {
		return "", false
	}
	text = strings.TrimPrefix(text, "nolint")
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
	return text, true
}

// parseRuleList splits "name1, name2." into a ruleSet; empty input means
// every rule.
func parseRuleList(s string) ruleSet {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), ":"))
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return nil
	}
	rules := make(ruleSet)
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name != "" {
			rules[name] = struct{}{}
		}
	}
	if len(rules) == 0 {
		return nil
	}
	return rules
}

func (ix *Index) mergeLine(line uint32, rules ruleSet) {
	existing, ok := ix.lines[line]
	if !ok {
		ix.lines[line] = rules
		return
	}
	// An all-rules directive wins over a named list.
	if existing == nil || rules == nil {
		ix.lines[line] = nil
		return
	}
	for name := range rules {
		existing[name] = struct{}{}
	}
}
