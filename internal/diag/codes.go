package diag

import "fmt"

// Code identifies the origin of a diagnostic: a lexer or parser condition,
// an I/O failure, an internal driver condition, or a lint rule.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999).
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexBadNumber           Code = 1003
	LexUnterminatedSpecial Code = 1004

	// Syntactic (2000-2999).
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBrace     Code = 2003
	SynUnclosedBracket   Code = 2004
	SynExpectExpression  Code = 2005
	SynExpectIdentifier  Code = 2006
	SynForMissingIn      Code = 2007
	SynTooManyErrors     Code = 2008

	// Lint rules (3000-3999). Names are resolved through the rules registry;
	// codes stay stable across renames.
	LintAssignmentOp       Code = 3001
	LintNullComparison     Code = 3002
	LintEqualsNA           Code = 3003
	LintAnyDuplicated      Code = 3004
	LintWhileTrue          Code = 3005
	LintClassComparison    Code = 3006
	LintSeqLen             Code = 3007
	LintDuplicateArguments Code = 3008
	LintUnusedBinding      Code = 3009
	LintUndefinedVariable  Code = 3010

	// I/O and driver (4000-4999).
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	FixLoopLimit     Code = 4003
	CheckFailed      Code = 4004
)

var codeNames = map[Code]string{
	UnknownCode:            "unknown",
	LexUnknownChar:         "lex_unknown_char",
	LexUnterminatedString:  "lex_unterminated_string",
	LexBadNumber:           "lex_bad_number",
	LexUnterminatedSpecial: "lex_unterminated_special",
	SynUnexpectedToken:     "syn_unexpected_token",
	SynUnclosedParen:       "syn_unclosed_paren",
	SynUnclosedBrace:       "syn_unclosed_brace",
	SynUnclosedBracket:     "syn_unclosed_bracket",
	SynExpectExpression:    "syn_expect_expression",
	SynExpectIdentifier:    "syn_expect_identifier",
	SynForMissingIn:        "syn_for_missing_in",
	SynTooManyErrors:       "syn_too_many_errors",
	LintAssignmentOp:       "assignment_op",
	LintNullComparison:     "null_comparison",
	LintEqualsNA:           "equals_na",
	LintAnyDuplicated:      "any_duplicated",
	LintWhileTrue:          "while_true",
	LintClassComparison:    "class_comparison",
	LintSeqLen:             "seq_len",
	LintDuplicateArguments: "duplicate_arguments",
	LintUnusedBinding:      "unused_binding",
	LintUndefinedVariable:  "undefined_variable",
	IOLoadFileError:        "io_load_file",
	IOWriteFileError:       "io_write_file",
	FixLoopLimit:           "fix_loop_limit",
	CheckFailed:            "check_failed",
}

// String returns the stable snake_case name of the code. Lint codes use the
// rule name, which is also what suppression directives and config lists match.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code_%d", uint16(c))
}

// ID returns the short display form, e.g. "RL3001".
func (c Code) ID() string {
	return fmt.Sprintf("RL%04d", uint16(c))
}

// IsLint reports whether the code belongs to a lint rule.
func (c Code) IsLint() bool {
	return c >= 3000 && c < 4000
}
