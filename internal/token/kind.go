package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF Kind = iota
	Unknown

	Ident
	NumberLit
	StringLit

	// Reserved constants.
	KwTrue
	KwFalse
	KwNull
	KwNA
	KwInf
	KwNaN

	// Keywords.
	KwIf
	KwElse
	KwFor
	KwWhile
	KwRepeat
	KwFunction
	KwBreak
	KwNext
	KwIn

	// Assignment operators.
	Arrow       // <-
	SuperArrow  // <<-
	RightArrow  // ->
	RightSuper  // ->>
	Eq          // =

	// Binary / unary operators.
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Caret     // ^
	EqEq      // ==
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Bang      // !
	Amp       // &
	AmpAmp    // &&
	Pipe      // |
	PipePipe  // ||
	NativePipe // |>
	Tilde     // ~
	Question  // ?
	Colon     // :
	ColonColon // ::
	TripleColon // :::
	Special   // %...% (includes %%, %in%, %/%, %*%)

	// Punctuation.
	Dollar    // $
	At        // @
	Comma     // ,
	Semicolon // ;
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Backslash // \ (lambda shorthand)
)

var kindNames = map[Kind]string{
	EOF:         "EOF",
	Unknown:     "Unknown",
	Ident:       "Ident",
	NumberLit:   "Number",
	StringLit:   "String",
	KwTrue:      "TRUE",
	KwFalse:     "FALSE",
	KwNull:      "NULL",
	KwNA:        "NA",
	KwInf:       "Inf",
	KwNaN:       "NaN",
	KwIf:        "if",
	KwElse:      "else",
	KwFor:       "for",
	KwWhile:     "while",
	KwRepeat:    "repeat",
	KwFunction:  "function",
	KwBreak:     "break",
	KwNext:      "next",
	KwIn:        "in",
	Arrow:       "<-",
	SuperArrow:  "<<-",
	RightArrow:  "->",
	RightSuper:  "->>",
	Eq:          "=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Caret:       "^",
	EqEq:        "==",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	Bang:        "!",
	Amp:         "&",
	AmpAmp:      "&&",
	Pipe:        "|",
	PipePipe:    "||",
	NativePipe:  "|>",
	Tilde:       "~",
	Question:    "?",
	Colon:       ":",
	ColonColon:  "::",
	TripleColon: ":::",
	Special:     "Special",
	Dollar:      "$",
	At:          "@",
	Comma:       ",",
	Semicolon:   ";",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Backslash:   "\\",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Invalid"
}
