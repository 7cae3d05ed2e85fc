package syntax

// NodeKind tags every node in the syntax tree. Rule dispatch is keyed on it.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota
	KindSource           // file root
	KindError            // parse-error recovery node

	// Leaves.
	KindIdent
	KindNumber
	KindString
	KindBool // TRUE / FALSE
	KindNull
	KindNA

	// Expressions.
	KindBinary    // lhs <op> rhs, op in Node.Tok
	KindUnary     // <op> operand
	KindCall      // callee ( args )
	KindArg       // one call argument, possibly named
	KindIndex     // x[i] and x[[i]]
	KindMember    // x$name, x@name
	KindNamespace // pkg::name, pkg:::name
	KindParen     // ( expr )
	KindBlock     // { exprs }
	KindFunction  // function(params) body, \(params) body
	KindParam     // one formal parameter, optional default

	// Control flow.
	KindIf     // if (cond) then [else alt]
	KindFor    // for (var in seq) body
	KindWhile  // while (cond) body
	KindRepeat // repeat body
	KindBreak
	KindNext
)

var kindNames = [...]string{
	KindInvalid:   "Invalid",
	KindSource:    "Source",
	KindError:     "Error",
	KindIdent:     "Ident",
	KindNumber:    "Number",
	KindString:    "String",
	KindBool:      "Bool",
	KindNull:      "Null",
	KindNA:        "NA",
	KindBinary:    "Binary",
	KindUnary:     "Unary",
	KindCall:      "Call",
	KindArg:       "Arg",
	KindIndex:     "Index",
	KindMember:    "Member",
	KindNamespace: "Namespace",
	KindParen:     "Paren",
	KindBlock:     "Block",
	KindFunction:  "Function",
	KindParam:     "Param",
	KindIf:        "If",
	KindFor:       "For",
	KindWhile:     "While",
	KindRepeat:    "Repeat",
	KindBreak:     "Break",
	KindNext:      "Next",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}
