package driver

import (
	"rlint/internal/diag"
	"rlint/internal/lexer"
	"rlint/internal/parser"
	"rlint/internal/source"
	"rlint/internal/syntax"
	"rlint/internal/token"
)

// TokenizeFile lexes one file to completion. Used by the tokenize debug
// command; the check pipeline lexes lazily inside the parser instead.
func (s *Session) TokenizeFile(fileSet *source.FileSet, path string) ([]token.Token, *diag.Bag, error) {
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(s.opts.MaxDiagnostics)
	lx := lexer.New(fileSet.Get(fileID), lexer.Options{
		Reporter: lexer.BagReporter{Bag: bag},
	})
	return lx.Tokens(), bag, nil
}

// ParseOnly parses one file without running sema or the checker. Used by the
// parse debug command.
func (s *Session) ParseOnly(fileSet *source.FileSet, path string) (*syntax.Tree, *diag.Bag, error) {
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(s.opts.MaxDiagnostics)
	tree := parser.ParseFile(fileSet.Get(fileID), parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return tree, bag, nil
}
