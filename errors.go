package main

import "fmt"

// ErrorKind classifies a compile error by the stage that produced it.
type ErrorKind string

const (
	ErrLexical  ErrorKind = "lexical error"
	ErrSyntax   ErrorKind = "syntax error"
	ErrImport   ErrorKind = "import error"
	ErrSemantic ErrorKind = "semantic error"
	ErrCodeGen  ErrorKind = "codegen error"
)

// CompileError is the single error type surfaced by every stage of the
// pipeline. The first error aborts the compilation; there is no recovery.
type CompileError struct {
	Kind ErrorKind
	File string
	Line int
	Col  int
	Msg  string
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Col, e.Kind, e.Msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func lexicalErr(file string, line, col int, format string, args ...any) *CompileError {
	return &CompileError{Kind: ErrLexical, File: file, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func syntaxErr(file string, tok Token, format string, args ...any) *CompileError {
	return &CompileError{Kind: ErrSyntax, File: file, Line: tok.Line, Col: tok.Col, Msg: fmt.Sprintf(format, args...)}
}

func importErr(file string, format string, args ...any) *CompileError {
	return &CompileError{Kind: ErrImport, File: file, Msg: fmt.Sprintf(format, args...)}
}

func semanticErr(file string, line, col int, format string, args ...any) *CompileError {
	return &CompileError{Kind: ErrSemantic, File: file, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func codegenErr(file string, line, col int, format string, args ...any) *CompileError {
	return &CompileError{Kind: ErrCodeGen, File: file, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}
