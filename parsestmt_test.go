package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func parseProgramString(t *testing.T, input string) string {
	t.Helper()
	p, err := NewParser(NewLexer("test.lime", input))
	be.Err(t, err, nil)
	prog, err := p.ParseProgram()
	be.Err(t, err, nil)
	return ToSExpr(prog)
}

func parseProgramErr(t *testing.T, input string) error {
	t.Helper()
	p, err := NewParser(NewLexer("test.lime", input))
	if err != nil {
		return err
	}
	_, err = p.ParseProgram()
	return err
}

func TestParseFunctionDecl(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn add(a: int, b: int) -> int { return a + b; }"),
		"(program (fn \"add\" ((a int) (b int)) int (block (return (binary \"+\" (ident \"a\") (ident \"b\"))))))")
}

func TestParseVoidFunction(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn log() { print(\"hi\"); }"),
		"(program (fn \"log\" () void (block (call \"print\" (string \"hi\")))))")
}

func TestParseLetStatement(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"fn f() { let x: int = 5; }",
			"(program (fn \"f\" () void (block (let \"x\" int (integer 5)))))",
		},
		{
			"fn f() { let x: float; }",
			"(program (fn \"f\" () void (block (let \"x\" float))))",
		},
		{
			"fn f() { let x = 5; }",
			"(program (fn \"f\" () void (block (let \"x\" _ (integer 5)))))",
		},
	}
	for _, test := range tests {
		be.Equal(t, parseProgramString(t, test.input), test.expected)
	}
}

func TestParseAssignAndIncrement(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { x = 1; }"),
		"(program (fn \"f\" () void (block (assign \"x\" (integer 1)))))")

	// x++ desugars at parse time to x = x + 1.
	be.Equal(t,
		parseProgramString(t, "fn f() { x++; }"),
		"(program (fn \"f\" () void (block (assign \"x\" (binary \"+\" (ident \"x\") (integer 1))))))")
}

func TestParseIfElse(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { if x < 1 { return; } }"),
		"(program (fn \"f\" () void (block (if (binary \"<\" (ident \"x\") (integer 1)) (block (return))))))")

	be.Equal(t,
		parseProgramString(t, "fn f() { if a { x = 1; } else { x = 2; } }"),
		"(program (fn \"f\" () void (block (if (ident \"a\") (block (assign \"x\" (integer 1))) (block (assign \"x\" (integer 2)))))))")
}

func TestParseElseIfChain(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { if a { } else if b { } else { } }"),
		"(program (fn \"f\" () void (block (if (ident \"a\") (block) (block (if (ident \"b\") (block) (block)))))))")
}

func TestParseWhile(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { while i < 10 { i++; } }"),
		"(program (fn \"f\" () void (block (while (binary \"<\" (ident \"i\") (integer 10)) (block (assign \"i\" (binary \"+\" (ident \"i\") (integer 1))))))))")
}

func TestParseFor(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { for let i: int = 0; i < 3; i++ { g(i); } }"),
		"(program (fn \"f\" () void (block (for (let \"i\" int (integer 0)) (binary \"<\" (ident \"i\") (integer 3)) (assign \"i\" (binary \"+\" (ident \"i\") (integer 1))) (block (call \"g\" (ident \"i\")))))))")
}

func TestParseForEmptyClauses(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { for ;; { g(); } }"),
		"(program (fn \"f\" () void (block (for _ _ _ (block (call \"g\"))))))")
}

func TestParseNestedBlock(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "fn f() { let x: int; { let x: int; } }"),
		"(program (fn \"f\" () void (block (let \"x\" int) (block (let \"x\" int)))))")
}

func TestParseImport(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "import \"lib/helpers\";\nfn main() -> int { return 0; }"),
		"(program (import \"lib/helpers\") (fn \"main\" () int (block (return (integer 0)))))")
}

func TestParseTopLevelLet(t *testing.T) {
	be.Equal(t,
		parseProgramString(t, "let answer: int = 42;"),
		"(program (let \"answer\" int (integer 42)))")
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"fn f( { }", "expected parameter name"},
		{"fn f() -> { }", "expected return type"},
		{"fn f() { let = 5; }", "expected variable name"},
		{"fn f() { let x: 5; }", "expected type name"},
		{"fn f() { return 1 }", "expected ';'"},
		{"fn f() { if x < 1 return; }", "expected '{'"},
		{"banana", "expected import, fn or let at top level"},
		{"fn f() {", "expected '}', found end of file"},
		{"import lib;", "expected import path string"},
	}

	for _, test := range tests {
		err := parseProgramErr(t, test.input)
		be.True(t, err != nil)
		be.True(t, strings.Contains(err.Error(), test.wantMsg))
	}
}

func TestParseErrorsReportPosition(t *testing.T) {
	err := parseProgramErr(t, "fn f() {\n  let 5;\n}")
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "test.lime:2:7"))
}

func TestParseIsFailFast(t *testing.T) {
	// Only the first error is reported; parsing does not resynchronize.
	err := parseProgramErr(t, "fn f() { let 1; let 2; }")
	be.True(t, err != nil)
	be.True(t, strings.Contains(err.Error(), "expected variable name"))
}
