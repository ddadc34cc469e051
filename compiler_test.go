package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func parseSource(t *testing.T, src string) *ASTNode {
	t.Helper()
	p, err := NewParser(NewLexer("test.lime", src))
	be.Err(t, err, nil)
	prog, err := p.ParseProgram()
	be.Err(t, err, nil)
	return prog
}

// compileSource parses and compiles one inline program and returns the
// textual IR, failing the test on any error.
func compileSource(t *testing.T, src string) string {
	t.Helper()
	m, err := NewCompiler().Compile(parseSource(t, src))
	be.Err(t, err, nil)
	return m.String()
}

// compileErr parses and compiles one inline program that is expected to
// fail and returns the error.
func compileErr(t *testing.T, src string) error {
	t.Helper()
	_, err := NewCompiler().Compile(parseSource(t, src))
	be.True(t, err != nil)
	return err
}

func TestCompileEmptyVoidFunction(t *testing.T) {
	out := compileSource(t, "fn f() { }")
	be.True(t, strings.Contains(out, "define void @f()"))
	be.True(t, strings.Contains(out, "ret void"))
}

func TestCompileFunctionSignature(t *testing.T) {
	out := compileSource(t, "fn add(a: int, b: float) -> float { return a + b; }")
	be.True(t, strings.Contains(out, "define double @add(i32 %a, double %b)"))
}

func TestCompilePrintfDeclaration(t *testing.T) {
	out := compileSource(t, "fn f() { }")
	be.True(t, strings.Contains(out, "declare i32 @printf(i8* %format, ...)"))
}

func TestCompileParamsGetStackSlots(t *testing.T) {
	// Parameters are spilled to allocas so the body can assign to them.
	out := compileSource(t, "fn f(n: int) -> int { n = n + 1; return n; }")
	be.True(t, strings.Contains(out, "alloca i32"))
	be.True(t, strings.Contains(out, "store i32 %n"))
}

func TestCompileArithmetic(t *testing.T) {
	out := compileSource(t, "fn f(a: int, b: int) -> int { return a * b + a / b - a % b; }")
	be.True(t, strings.Contains(out, "mul i32"))
	be.True(t, strings.Contains(out, "sdiv i32"))
	be.True(t, strings.Contains(out, "srem i32"))
	be.True(t, strings.Contains(out, "add i32"))
	be.True(t, strings.Contains(out, "sub i32"))
}

func TestCompileFloatArithmetic(t *testing.T) {
	out := compileSource(t, "fn f(a: float, b: float) -> float { return a * b + a / b; }")
	be.True(t, strings.Contains(out, "fmul double"))
	be.True(t, strings.Contains(out, "fdiv double"))
	be.True(t, strings.Contains(out, "fadd double"))
}

func TestCompileIntWidensToFloat(t *testing.T) {
	out := compileSource(t, "fn f(a: int, b: float) -> float { return a + b; }")
	be.True(t, strings.Contains(out, "sitofp i32"))
	be.True(t, strings.Contains(out, "fadd double"))
}

func TestCompileComparisons(t *testing.T) {
	out := compileSource(t, "fn f(a: int, b: float) -> bool { return a < 1 && b >= 2.0 || a == 3; }")
	be.True(t, strings.Contains(out, "icmp slt i32"))
	be.True(t, strings.Contains(out, "fcmp oge double"))
	be.True(t, strings.Contains(out, "icmp eq i32"))
	be.True(t, strings.Contains(out, "and i1"))
	be.True(t, strings.Contains(out, "or i1"))
}

func TestCompileUnary(t *testing.T) {
	out := compileSource(t, "fn f(a: int, b: bool) -> int { if !b { return -a; } return a; }")
	be.True(t, strings.Contains(out, "sub i32 0"))
	be.True(t, strings.Contains(out, "xor i1"))
}

func TestCompileIncrement(t *testing.T) {
	out := compileSource(t, "fn f() -> int { let i: int = 0; i++; return i; }")
	be.True(t, strings.Contains(out, "add i32"))
}

func TestCompileIfElseBlocks(t *testing.T) {
	out := compileSource(t, "fn f(x: int) -> int { let r: int = 0; if x < 0 { r = 1; } else { r = 2; } return r; }")
	be.True(t, strings.Contains(out, "if.then.1"))
	be.True(t, strings.Contains(out, "if.else.1"))
	be.True(t, strings.Contains(out, "if.end.1"))
	be.True(t, strings.Contains(out, "br i1"))
}

func TestCompileIfBothArmsReturnHasNoMerge(t *testing.T) {
	out := compileSource(t, "fn f(x: int) -> int { if x < 0 { return 1; } else { return 2; } }")
	be.True(t, !strings.Contains(out, "if.end"))
}

func TestCompileWhileBlocks(t *testing.T) {
	out := compileSource(t, "fn f() -> int { let i: int = 0; while i < 10 { i++; } return i; }")
	be.True(t, strings.Contains(out, "while.cond.1"))
	be.True(t, strings.Contains(out, "while.body.1"))
	be.True(t, strings.Contains(out, "while.end.1"))
}

func TestCompileForDesugarsToLoopBlocks(t *testing.T) {
	out := compileSource(t, "fn f() -> int { let s: int = 0; for let i: int = 0; i < 3; i++ { s = s + i; } return s; }")
	be.True(t, strings.Contains(out, "for.cond.1"))
	be.True(t, strings.Contains(out, "for.body.1"))
	be.True(t, strings.Contains(out, "for.end.1"))
}

func TestCompileForWithoutCondLoopsForever(t *testing.T) {
	out := compileSource(t, "fn f() { for ;; { } }")
	be.True(t, strings.Contains(out, "br i1 true"))
}

func TestCompileRecursion(t *testing.T) {
	out := compileSource(t, `
fn fib(n: int) -> int {
	if n < 2 {
		return n;
	}
	return fib(n - 1) + fib(n - 2);
}

fn main() -> int {
	return fib(10);
}
`)
	be.True(t, strings.Contains(out, "define i32 @fib(i32 %n)"))
	be.True(t, strings.Contains(out, "define i32 @main()"))
	be.True(t, strings.Contains(out, "call i32 @fib"))
}

func TestCompileForwardReference(t *testing.T) {
	// g is declared after f but callable from it.
	out := compileSource(t, "fn f() -> int { return g(); }\nfn g() -> int { return 1; }")
	be.True(t, strings.Contains(out, "call i32 @g"))
}

func TestCompileGlobals(t *testing.T) {
	out := compileSource(t, "let answer: int = 42;\nlet pi: float = 3.14;\nlet on: bool = true;\nfn f() -> int { return answer; }")
	be.True(t, strings.Contains(out, "@answer = global i32 42"))
	be.True(t, strings.Contains(out, "@pi = global double"))
	be.True(t, strings.Contains(out, "@on = global i1 true"))
}

func TestCompileGlobalDefaults(t *testing.T) {
	out := compileSource(t, "let n: int;\nlet f: float;\nlet b: bool;")
	be.True(t, strings.Contains(out, "@n = global i32 0"))
	be.True(t, strings.Contains(out, "@b = global i1 false"))
}

func TestCompileGlobalNegativeLiteral(t *testing.T) {
	out := compileSource(t, "let n: int = -7;")
	be.True(t, strings.Contains(out, "@n = global i32 -7"))
}

func TestCompileGlobalIntWidensToFloat(t *testing.T) {
	out := compileSource(t, "let x: float = 5;")
	be.True(t, strings.Contains(out, "@x = global double"))
}

func TestCompileGlobalTypeInference(t *testing.T) {
	out := compileSource(t, "let n = 3;")
	be.True(t, strings.Contains(out, "@n = global i32 3"))
}

func TestCompileStringLiteralsAreInterned(t *testing.T) {
	out := compileSource(t, `fn f() { print("hi"); print("hi"); }`)
	be.Equal(t, strings.Count(out, `c"hi\00"`), 1)
}

func TestCompilePrintLowersToPrintf(t *testing.T) {
	out := compileSource(t, `fn f(n: int) { print("n = %i\n", n); }`)
	be.True(t, strings.Contains(out, "call i32 (i8*, ...) @printf"))
	// %i is rewritten to the C %d specifier.
	be.True(t, strings.Contains(out, `c"n = %d\0A\00"`))
}

func TestCompilePrintBoolPassesAsInt(t *testing.T) {
	out := compileSource(t, `fn f(b: bool) { print("%b\n", b); }`)
	be.True(t, strings.Contains(out, "zext i1"))
	be.True(t, strings.Contains(out, `c"%d\0A\00"`))
}

func TestCompilePrintWidensIntForFloatSpecifier(t *testing.T) {
	out := compileSource(t, `fn f(n: int) { print("%f\n", n); }`)
	be.True(t, strings.Contains(out, "sitofp i32"))
}

func TestCompileVariableShadowing(t *testing.T) {
	out := compileSource(t, `
fn f() -> int {
	let x: int = 1;
	{
		let x: int = 2;
		print("%d\n", x);
	}
	return x;
}
`)
	be.Equal(t, strings.Count(out, "alloca i32"), 2)
}

func TestCompileUnreachableCodeAfterReturnIsDropped(t *testing.T) {
	out := compileSource(t, "fn f() -> int { return 1; return 2; }")
	be.Equal(t, strings.Count(out, "ret i32"), 1)
}

func TestCompileLetTypeInference(t *testing.T) {
	out := compileSource(t, "fn f() -> float { let x = 2.5; return x; }")
	be.True(t, strings.Contains(out, "alloca double"))
}

func TestCompileVoidCallAsStatement(t *testing.T) {
	out := compileSource(t, "fn g() { }\nfn f() { g(); }")
	be.True(t, strings.Contains(out, "call void @g()"))
}
