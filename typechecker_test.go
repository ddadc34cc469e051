package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func assertSemanticErr(t *testing.T, src, wantMsg string) {
	t.Helper()
	err := compileErr(t, src)
	be.True(t, strings.Contains(err.Error(), "semantic error"))
	be.True(t, strings.Contains(err.Error(), wantMsg))
}

func TestWideningIntToFloat(t *testing.T) {
	compileSource(t, "fn f() { let x: float = 5; x = 7; }")
}

func TestNarrowingIsRejected(t *testing.T) {
	assertSemanticErr(t, "fn f() { let y: int = 5.5; }",
		"cannot use float value as int")
}

func TestAssignTypeMismatch(t *testing.T) {
	assertSemanticErr(t, "fn f() { let b: bool = true; b = 1; }",
		"cannot use int value as bool")
}

func TestBinaryTypeMismatch(t *testing.T) {
	assertSemanticErr(t, "fn f() -> int { return 1 + true; }",
		"type mismatch: int + bool")
}

func TestArithmeticOnStrings(t *testing.T) {
	assertSemanticErr(t, `fn f() { let s: str = "a" + "b"; }`,
		"operator + not defined on str")
}

func TestRelationalOnBool(t *testing.T) {
	assertSemanticErr(t, "fn f() -> bool { return true < false; }",
		"operator < not defined on bool")
}

func TestLogicalRequiresBool(t *testing.T) {
	assertSemanticErr(t, "fn f() -> bool { return 1 && 2; }",
		"operator && requires bool operands")
}

func TestUnaryMinusOnBool(t *testing.T) {
	assertSemanticErr(t, "fn f() { let x: bool = -true; }",
		"operator - not defined on bool")
}

func TestUnaryNotOnInt(t *testing.T) {
	assertSemanticErr(t, "fn f() { let x: bool = !1; }",
		"operator ! not defined on int")
}

func TestIfConditionMustBeBool(t *testing.T) {
	assertSemanticErr(t, "fn f() { if 1 { } }",
		"if condition must be bool, got int")
}

func TestWhileConditionMustBeBool(t *testing.T) {
	assertSemanticErr(t, `fn f() { while "x" { } }`,
		"while condition must be bool, got str")
}

func TestUndefinedSymbol(t *testing.T) {
	assertSemanticErr(t, "fn f() -> int { return y; }",
		`undefined symbol "y"`)
}

func TestUndefinedFunction(t *testing.T) {
	assertSemanticErr(t, "fn f() { g(); }",
		`undefined symbol "g"`)
}

func TestRedeclarationInSameScope(t *testing.T) {
	assertSemanticErr(t, "fn f() { let x: int; let x: int; }",
		`"x" is already declared in this scope`)
}

func TestDuplicateFunction(t *testing.T) {
	assertSemanticErr(t, "fn f() { }\nfn f() { }",
		`"f" is already declared`)
}

func TestShadowingIsLegal(t *testing.T) {
	compileSource(t, "fn f() { let x: int = 1; { let x: str; } }")
}

func TestSiblingScopesMayReuseNames(t *testing.T) {
	compileSource(t, "fn f(a: bool) { if a { let x: int; } else { let x: int; } }")
}

func TestCallArityMismatch(t *testing.T) {
	assertSemanticErr(t, "fn g(a: int) { }\nfn f() { g(1, 2); }",
		`function "g" expects 1 argument(s), got 2`)
}

func TestCallArgumentTypeMismatch(t *testing.T) {
	assertSemanticErr(t, "fn g(a: int) { }\nfn f() { g(true); }",
		`argument 1 of "g"`)
}

func TestCallArgumentWidening(t *testing.T) {
	compileSource(t, "fn g(a: float) { }\nfn f() { g(1); }")
}

func TestCallingAVariable(t *testing.T) {
	assertSemanticErr(t, "fn f() { let x: int = 1; x(); }",
		`"x" is not a function`)
}

func TestFunctionUsedAsValue(t *testing.T) {
	assertSemanticErr(t, "fn g() { }\nfn f() -> int { return g + 1; }",
		`function "g" used as a value`)
}

func TestAssignToFunction(t *testing.T) {
	assertSemanticErr(t, "fn g() { }\nfn f() { g = 1; }",
		`cannot assign to function "g"`)
}

func TestMissingReturn(t *testing.T) {
	assertSemanticErr(t, "fn f(x: int) -> int { if x < 0 { return 0; } }",
		"missing return")
}

func TestReturnOnAllPathsViaIfElse(t *testing.T) {
	compileSource(t, "fn f(x: int) -> int { if x < 0 { return 0; } else { return x; } }")
}

func TestVoidFunctionCannotReturnValue(t *testing.T) {
	assertSemanticErr(t, "fn f() { return 1; }",
		`void function "f" cannot return a value`)
}

func TestValueReturnRequired(t *testing.T) {
	assertSemanticErr(t, "fn f() -> int { return; }",
		`function "f" must return a int value`)
}

func TestReturnValueWidens(t *testing.T) {
	compileSource(t, "fn f() -> float { return 2; }")
}

func TestCannotRedefinePrint(t *testing.T) {
	assertSemanticErr(t, "fn print() { }",
		"built-in")
}

func TestVoidExpressionHasNoType(t *testing.T) {
	assertSemanticErr(t, "fn g() { }\nfn f() { let x = g(); }",
		`cannot infer a type for "x"`)
}

func TestGlobalInitializerMustBeLiteral(t *testing.T) {
	assertSemanticErr(t, "fn g() -> int { return 1; }\nlet x: int = g();",
		`global "x" must be initialized with a literal`)
}

func TestGlobalNeedsTypeOrInitializer(t *testing.T) {
	assertSemanticErr(t, "let x;",
		`global "x" needs a type annotation or an initializer`)
}

func TestPrintFormatMustBeLiteral(t *testing.T) {
	assertSemanticErr(t, `fn f(s: str) { print(s); }`,
		"print requires a string literal format")
}

func TestPrintSpecifierCountMismatch(t *testing.T) {
	assertSemanticErr(t, `fn f() { print("%d %d\n", 1); }`,
		"print format has 2 specifier(s) but 1 argument(s) were given")
}

func TestPrintUnknownSpecifier(t *testing.T) {
	assertSemanticErr(t, `fn f() { print("%q\n"); }`,
		"unknown print specifier %q")
}

func TestPrintBareTrailingPercent(t *testing.T) {
	assertSemanticErr(t, `fn f() { print("100%"); }`,
		"print format ends with a bare %")
}

func TestPrintSpecifierTypeMismatch(t *testing.T) {
	assertSemanticErr(t, `fn f() { print("%d\n", 1.5); }`,
		"%d expects int, got float")
}

func TestPrintStringSpecifier(t *testing.T) {
	assertSemanticErr(t, `fn f() { print("%s\n", 1); }`,
		"%s expects str, got int")
}

func TestPrintLiteralPercentTakesNoArgument(t *testing.T) {
	compileSource(t, `fn f() { print("100%%\n"); }`)
}

func TestErrorsCarryPosition(t *testing.T) {
	err := compileErr(t, "fn f() {\n  let y: int = 5.5;\n}")
	be.True(t, strings.Contains(err.Error(), "test.lime:2:"))
}
