package token

// keywords maps reserved words to their token kinds. R reserves both the
// control-flow words and a handful of constants; the NA_*_ variants all lex
// as KwNA since no rule distinguishes them.
var keywords = map[string]Kind{
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"repeat":   KwRepeat,
	"function": KwFunction,
	"break":    KwBreak,
	"next":     KwNext,
	"in":       KwIn,

	"TRUE":  KwTrue,
	"FALSE": KwFalse,
	"NULL":  KwNull,
	"NA":    KwNA,
	"Inf":   KwInf,
	"NaN":   KwNaN,

	"NA_integer_":   KwNA,
	"NA_real_":      KwNA,
	"NA_character_": KwNA,
	"NA_complex_":   KwNA,
}

// LookupKeyword returns the keyword kind for text, or Ident.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// IsAssignOp reports whether k is one of R's assignment operators.
func IsAssignOp(k Kind) bool {
	switch k {
	case Arrow, SuperArrow, RightArrow, RightSuper, Eq:
		return true
	default:
		return false
	}
}
