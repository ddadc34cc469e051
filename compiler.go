package main

import (
	"fmt"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// llType maps a Lime type name to its LLVM type. The empty string is the
// void return type of a function declared without an arrow clause.
func llType(name string) types.Type {
	switch name {
	case "int":
		return types.I32
	case "float":
		return types.Double
	case "bool":
		return types.I1
	case "str":
		return types.I8Ptr
	case "":
		return types.Void
	default:
		return nil
	}
}

// Compiler lowers one merged Program into an LLVM module. A Compiler value
// owns its frame stack for the duration of exactly one Compile call and is
// not safe for concurrent use.
type Compiler struct {
	module  *ir.Module
	printf  *ir.Func
	globals *Env

	// State for the function currently being generated.
	env    *Env
	fn     *ir.Func
	fnRet  string
	block  *ir.Block
	file   string
	blocks int

	strings map[string]constant.Constant
}

func NewCompiler() *Compiler {
	return &Compiler{strings: make(map[string]constant.Constant)}
}

// Compile generates IR for the whole program in two phases: first every
// top-level signature is declared in the global frame, then each function
// body is generated. Declaring signatures up front is what lets a function
// call itself or a function declared later in the file.
func (c *Compiler) Compile(program *ASTNode) (*ir.Module, error) {
	c.module = ir.NewModule()
	c.globals = NewEnv(nil)

	c.printf = c.module.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	c.printf.Sig.Variadic = true

	// Phase 1: signatures and globals.
	for _, decl := range program.Children {
		c.file = decl.File
		switch decl.Kind {
		case NodeFunc:
			if err := c.declareFunc(decl); err != nil {
				return nil, err
			}
		case NodeLet:
			if err := c.declareGlobal(decl); err != nil {
				return nil, err
			}
		default:
			return nil, codegenErr(decl.File, decl.Line, decl.Col, "unsupported top-level construct %s", decl.Kind)
		}
	}

	// Phase 2: function bodies.
	for _, decl := range program.Children {
		if decl.Kind != NodeFunc {
			continue
		}
		c.file = decl.File
		if err := c.compileFunc(decl); err != nil {
			return nil, err
		}
	}
	return c.module, nil
}

func (c *Compiler) declareFunc(decl *ASTNode) error {
	if decl.Name == "print" {
		return c.semErr(decl, "cannot declare %q: it is a built-in function", decl.Name)
	}
	var params []*ir.Param
	var paramTypes []string
	for _, p := range decl.Params {
		params = append(params, ir.NewParam(p.Name, llType(p.Type)))
		paramTypes = append(paramTypes, p.Type)
	}
	fn := c.module.NewFunc(decl.Name, llType(decl.RetType), params...)
	sym := &Symbol{
		Name:       decl.Name,
		Kind:       SymFunction,
		ParamTypes: paramTypes,
		RetType:    decl.RetType,
		Handle:     fn,
	}
	if err := c.globals.Declare(sym); err != nil {
		return c.semErr(decl, "%q is already declared", decl.Name)
	}
	return nil
}

// declareGlobal lowers a top-level let. Global initializers must be
// literals (optionally negated); anything else cannot be evaluated before
// main runs.
func (c *Compiler) declareGlobal(decl *ASTNode) error {
	init, initType, err := c.globalInit(decl)
	if err != nil {
		return err
	}
	declType := decl.VarType
	switch {
	case declType == "":
		declType = initType
	case declType == initType:
	case declType == "float" && initType == "int":
		// Int literals widen to float.
		init = constant.NewFloat(types.Double, float64(init.(*constant.Int).X.Int64()))
	default:
		return c.semErr(decl, "type mismatch: cannot use %s value as %s", initType, declType)
	}
	g := c.module.NewGlobalDef(decl.Name, init)
	sym := &Symbol{Name: decl.Name, Kind: SymVariable, Type: declType, Handle: g}
	if err := c.globals.Declare(sym); err != nil {
		return c.semErr(decl, "%q is already declared", decl.Name)
	}
	return nil
}

func (c *Compiler) globalInit(decl *ASTNode) (constant.Constant, string, error) {
	v := decl.Value
	if v == nil {
		if decl.VarType == "" {
			return nil, "", c.semErr(decl, "global %q needs a type annotation or an initializer", decl.Name)
		}
		return c.zeroValue(decl.VarType), decl.VarType, nil
	}
	neg := false
	if v.Kind == NodeUnary && v.Op == "-" {
		neg = true
		v = v.Children[0]
	}
	switch v.Kind {
	case NodeIntLit:
		n := v.Int
		if neg {
			n = -n
		}
		return constant.NewInt(types.I32, n), "int", nil
	case NodeFloatLit:
		f := v.Float
		if neg {
			f = -f
		}
		return constant.NewFloat(types.Double, f), "float", nil
	case NodeBoolLit:
		if neg {
			break
		}
		return constant.NewBool(v.Bool), "bool", nil
	case NodeStringLit:
		if neg {
			break
		}
		return c.internString(v.Str), "str", nil
	}
	return nil, "", c.semErr(decl, "global %q must be initialized with a literal", decl.Name)
}

func (c *Compiler) zeroValue(typeName string) constant.Constant {
	switch typeName {
	case "int":
		return constant.NewInt(types.I32, 0)
	case "float":
		return constant.NewFloat(types.Double, 0)
	case "bool":
		return constant.False
	default: // str
		return constant.NewNull(types.I8Ptr)
	}
}

func (c *Compiler) compileFunc(decl *ASTNode) error {
	sym, _ := c.globals.Resolve(decl.Name)
	fn := sym.Handle.(*ir.Func)

	c.fn = fn
	c.fnRet = decl.RetType
	c.env = NewEnv(c.globals)
	c.block = fn.NewBlock("entry")

	// Parameters become stack slots so the body can assign to them.
	for i, p := range decl.Params {
		slot := c.block.NewAlloca(llType(p.Type))
		c.block.NewStore(fn.Params[i], slot)
		psym := &Symbol{Name: p.Name, Kind: SymVariable, Type: p.Type, Handle: slot}
		if err := c.env.Declare(psym); err != nil {
			return c.semErr(decl, "duplicate parameter %q in function %q", p.Name, decl.Name)
		}
	}

	terminated, err := c.compileStmts(decl.Body.Children)
	if err != nil {
		return err
	}
	if !terminated {
		if decl.RetType != "" {
			return c.semErr(decl, "function %q: missing return (control may reach end of non-void function)", decl.Name)
		}
		c.block.NewRet(nil)
	}
	c.env = nil
	c.fn = nil
	return nil
}

// compileStmts generates the statements of one block body and reports
// whether control flow is terminated (every path ended in a return).
// Statements after a terminator are unreachable and are not emitted.
func (c *Compiler) compileStmts(stmts []*ASTNode) (bool, error) {
	for _, stmt := range stmts {
		terminated, err := c.compileStmt(stmt)
		if err != nil {
			return false, err
		}
		if terminated {
			return true, nil
		}
	}
	return false, nil
}

func (c *Compiler) compileStmt(node *ASTNode) (bool, error) {
	switch node.Kind {
	case NodeLet:
		return false, c.compileLet(node)
	case NodeAssign:
		return false, c.compileAssign(node)
	case NodeReturn:
		return true, c.compileReturn(node)
	case NodeIf:
		return c.compileIf(node)
	case NodeWhile:
		return false, c.compileWhile(node)
	case NodeFor:
		return false, c.compileFor(node)
	case NodeBlock:
		outer := c.env
		c.env = NewEnv(outer)
		terminated, err := c.compileStmts(node.Children)
		c.env = outer
		return terminated, err
	case NodeCall:
		_, _, err := c.compileCall(node)
		return false, err
	case NodeBinary, NodeUnary, NodeIntLit, NodeFloatLit, NodeStringLit, NodeBoolLit, NodeIdent:
		// Expression statement: evaluate for effect, discard the value.
		_, _, err := c.compileExpr(node)
		return false, err
	default:
		return false, codegenErr(c.file, node.Line, node.Col, "unsupported construct %s", node.Kind)
	}
}

func (c *Compiler) compileLet(node *ASTNode) error {
	declType := node.VarType
	var slot value.Value
	if node.Value != nil {
		val, vt, err := c.compileExpr(node.Value)
		if err != nil {
			return err
		}
		if declType == "" {
			// No annotation: the variable takes the initializer's type.
			if vt == "" {
				return c.semErr(node, "cannot infer a type for %q from a void expression", node.Name)
			}
			declType = vt
		}
		val, err = c.coerce(node.Value, val, vt, declType)
		if err != nil {
			return err
		}
		s := c.block.NewAlloca(llType(declType))
		c.block.NewStore(val, s)
		slot = s
	} else {
		if declType == "" {
			return c.semErr(node, "variable %q needs a type annotation or an initializer", node.Name)
		}
		s := c.block.NewAlloca(llType(declType))
		c.block.NewStore(c.zeroValue(declType), s)
		slot = s
	}
	sym := &Symbol{Name: node.Name, Kind: SymVariable, Type: declType, Handle: slot}
	if err := c.env.Declare(sym); err != nil {
		return c.semErr(node, "%q is already declared in this scope", node.Name)
	}
	return nil
}

func (c *Compiler) compileAssign(node *ASTNode) error {
	sym, ok := c.env.Resolve(node.Name)
	if !ok {
		return c.semErr(node, "undefined symbol %q", node.Name)
	}
	if sym.Kind != SymVariable {
		return c.semErr(node, "cannot assign to function %q", node.Name)
	}
	val, vt, err := c.compileExpr(node.Value)
	if err != nil {
		return err
	}
	val, err = c.coerce(node.Value, val, vt, sym.Type)
	if err != nil {
		return err
	}
	c.block.NewStore(val, sym.Handle)
	return nil
}

func (c *Compiler) compileReturn(node *ASTNode) error {
	if c.fnRet == "" {
		if node.Value != nil {
			return c.semErr(node, "void function %q cannot return a value", c.fn.Name())
		}
		c.block.NewRet(nil)
		return nil
	}
	if node.Value == nil {
		return c.semErr(node, "function %q must return a %s value", c.fn.Name(), c.fnRet)
	}
	val, vt, err := c.compileExpr(node.Value)
	if err != nil {
		return err
	}
	val, err = c.coerce(node.Value, val, vt, c.fnRet)
	if err != nil {
		return err
	}
	c.block.NewRet(val)
	return nil
}

// compileIf lowers to explicit basic blocks: a conditional branch into the
// then (and optional else) block and a merge point. When every branch
// returns, no merge block is created and the statement terminates control
// flow.
func (c *Compiler) compileIf(node *ASTNode) (bool, error) {
	cond, err := c.compileCond(node.Cond, "if")
	if err != nil {
		return false, err
	}
	condBlk := c.block

	id := c.nextBlockID()
	thenBlk := c.fn.NewBlock(fmt.Sprintf("if.then.%d", id))
	var elseBlk *ir.Block
	if node.Else != nil {
		elseBlk = c.fn.NewBlock(fmt.Sprintf("if.else.%d", id))
	}

	outer := c.env

	c.block = thenBlk
	c.env = NewEnv(outer)
	thenTerm, err := c.compileStmts(node.Body.Children)
	c.env = outer
	if err != nil {
		return false, err
	}
	thenEnd := c.block

	var elseTerm bool
	var elseEnd *ir.Block
	if elseBlk != nil {
		c.block = elseBlk
		c.env = NewEnv(outer)
		elseTerm, err = c.compileStmts(node.Else.Children)
		c.env = outer
		if err != nil {
			return false, err
		}
		elseEnd = c.block
	}

	if elseBlk != nil && thenTerm && elseTerm {
		// Both arms return; there is no fall-through path and no merge block.
		condBlk.NewCondBr(cond, thenBlk, elseBlk)
		return true, nil
	}

	merge := c.fn.NewBlock(fmt.Sprintf("if.end.%d", id))
	if elseBlk != nil {
		condBlk.NewCondBr(cond, thenBlk, elseBlk)
		if !elseTerm {
			elseEnd.NewBr(merge)
		}
	} else {
		condBlk.NewCondBr(cond, thenBlk, merge)
	}
	if !thenTerm {
		thenEnd.NewBr(merge)
	}
	c.block = merge
	return false, nil
}

func (c *Compiler) compileWhile(node *ASTNode) error {
	id := c.nextBlockID()
	condBlk := c.fn.NewBlock(fmt.Sprintf("while.cond.%d", id))
	bodyBlk := c.fn.NewBlock(fmt.Sprintf("while.body.%d", id))
	exitBlk := c.fn.NewBlock(fmt.Sprintf("while.end.%d", id))

	c.block.NewBr(condBlk)
	c.block = condBlk
	cond, err := c.compileCond(node.Cond, "while")
	if err != nil {
		return err
	}
	c.block.NewCondBr(cond, bodyBlk, exitBlk)

	outer := c.env
	c.block = bodyBlk
	c.env = NewEnv(outer)
	terminated, err := c.compileStmts(node.Body.Children)
	c.env = outer
	if err != nil {
		return err
	}
	if !terminated {
		c.block.NewBr(condBlk)
	}
	c.block = exitBlk
	return nil
}

// compileFor desugars `for init; cond; post { body }` around a
// while-shaped loop. The init clause scopes to the loop, so the whole
// statement gets its own frame.
func (c *Compiler) compileFor(node *ASTNode) error {
	outer := c.env
	c.env = NewEnv(outer)
	defer func() { c.env = outer }()

	if node.Init != nil {
		if _, err := c.compileStmt(node.Init); err != nil {
			return err
		}
	}

	id := c.nextBlockID()
	condBlk := c.fn.NewBlock(fmt.Sprintf("for.cond.%d", id))
	bodyBlk := c.fn.NewBlock(fmt.Sprintf("for.body.%d", id))
	exitBlk := c.fn.NewBlock(fmt.Sprintf("for.end.%d", id))

	c.block.NewBr(condBlk)
	c.block = condBlk
	var cond value.Value
	if node.Cond != nil {
		var err error
		cond, err = c.compileCond(node.Cond, "for")
		if err != nil {
			return err
		}
	} else {
		cond = constant.True
	}
	c.block.NewCondBr(cond, bodyBlk, exitBlk)

	loopEnv := c.env
	c.block = bodyBlk
	c.env = NewEnv(loopEnv)
	terminated, err := c.compileStmts(node.Body.Children)
	c.env = loopEnv
	if err != nil {
		return err
	}
	if !terminated {
		if node.Post != nil {
			if _, err := c.compileStmt(node.Post); err != nil {
				return err
			}
		}
		c.block.NewBr(condBlk)
	}
	c.block = exitBlk
	return nil
}

// compileCond evaluates a control-flow condition, which must be boolean.
func (c *Compiler) compileCond(node *ASTNode, stmt string) (value.Value, error) {
	val, vt, err := c.compileExpr(node)
	if err != nil {
		return nil, err
	}
	if vt != "bool" {
		return nil, c.semErr(node, "%s condition must be bool, got %s", stmt, typeName(vt))
	}
	return val, nil
}

func (c *Compiler) compileExpr(node *ASTNode) (value.Value, string, error) {
	switch node.Kind {
	case NodeIntLit:
		return constant.NewInt(types.I32, node.Int), "int", nil
	case NodeFloatLit:
		return constant.NewFloat(types.Double, node.Float), "float", nil
	case NodeBoolLit:
		return constant.NewBool(node.Bool), "bool", nil
	case NodeStringLit:
		return c.internString(node.Str), "str", nil
	case NodeIdent:
		sym, ok := c.env.Resolve(node.Str)
		if !ok {
			return nil, "", c.semErr(node, "undefined symbol %q", node.Str)
		}
		if sym.Kind != SymVariable {
			return nil, "", c.semErr(node, "function %q used as a value", node.Str)
		}
		return c.block.NewLoad(llType(sym.Type), sym.Handle), sym.Type, nil
	case NodeUnary:
		return c.compileUnary(node)
	case NodeBinary:
		return c.compileBinary(node)
	case NodeCall:
		return c.compileCall(node)
	default:
		return nil, "", codegenErr(c.file, node.Line, node.Col, "unsupported construct %s in expression", node.Kind)
	}
}

func (c *Compiler) compileUnary(node *ASTNode) (value.Value, string, error) {
	val, vt, err := c.compileExpr(node.Children[0])
	if err != nil {
		return nil, "", err
	}
	switch node.Op {
	case "-":
		switch vt {
		case "int":
			return c.block.NewSub(constant.NewInt(types.I32, 0), val), "int", nil
		case "float":
			return c.block.NewFSub(constant.NewFloat(types.Double, 0), val), "float", nil
		}
		return nil, "", c.semErr(node, "operator - not defined on %s", vt)
	case "!":
		if vt != "bool" {
			return nil, "", c.semErr(node, "operator ! not defined on %s", vt)
		}
		return c.block.NewXor(val, constant.True), "bool", nil
	default:
		return nil, "", codegenErr(c.file, node.Line, node.Col, "unsupported unary operator %q", node.Op)
	}
}

func (c *Compiler) compileBinary(node *ASTNode) (value.Value, string, error) {
	left, lt, err := c.compileExpr(node.Children[0])
	if err != nil {
		return nil, "", err
	}
	right, rt, err := c.compileExpr(node.Children[1])
	if err != nil {
		return nil, "", err
	}

	// Operand types must agree after int→float widening.
	if lt != rt {
		switch {
		case lt == "int" && rt == "float":
			left, lt = c.block.NewSIToFP(left, types.Double), "float"
		case lt == "float" && rt == "int":
			right = c.block.NewSIToFP(right, types.Double)
		default:
			return nil, "", c.semErr(node, "type mismatch: %s %s %s", typeName(lt), node.Op, typeName(rt))
		}
	}

	switch node.Op {
	case "+", "-", "*", "/", "%":
		switch lt {
		case "int":
			return c.intArith(node.Op, left, right), "int", nil
		case "float":
			return c.floatArith(node.Op, left, right), "float", nil
		}
		return nil, "", c.semErr(node, "operator %s not defined on %s", node.Op, lt)
	case "==", "!=", "<", ">", "<=", ">=":
		switch lt {
		case "int":
			return c.block.NewICmp(intPred(node.Op), left, right), "bool", nil
		case "float":
			return c.block.NewFCmp(floatPred(node.Op), left, right), "bool", nil
		case "bool":
			if node.Op == "==" || node.Op == "!=" {
				return c.block.NewICmp(intPred(node.Op), left, right), "bool", nil
			}
		}
		return nil, "", c.semErr(node, "operator %s not defined on %s", node.Op, lt)
	case "&&", "||":
		if lt != "bool" {
			return nil, "", c.semErr(node, "operator %s requires bool operands, got %s", node.Op, lt)
		}
		if node.Op == "&&" {
			return c.block.NewAnd(left, right), "bool", nil
		}
		return c.block.NewOr(left, right), "bool", nil
	default:
		return nil, "", codegenErr(c.file, node.Line, node.Col, "unsupported binary operator %q", node.Op)
	}
}

func (c *Compiler) intArith(op string, x, y value.Value) value.Value {
	switch op {
	case "+":
		return c.block.NewAdd(x, y)
	case "-":
		return c.block.NewSub(x, y)
	case "*":
		return c.block.NewMul(x, y)
	case "/":
		return c.block.NewSDiv(x, y)
	default: // %
		return c.block.NewSRem(x, y)
	}
}

func (c *Compiler) floatArith(op string, x, y value.Value) value.Value {
	switch op {
	case "+":
		return c.block.NewFAdd(x, y)
	case "-":
		return c.block.NewFSub(x, y)
	case "*":
		return c.block.NewFMul(x, y)
	case "/":
		return c.block.NewFDiv(x, y)
	default: // %
		return c.block.NewFRem(x, y)
	}
}

func intPred(op string) enum.IPred {
	switch op {
	case "==":
		return enum.IPredEQ
	case "!=":
		return enum.IPredNE
	case "<":
		return enum.IPredSLT
	case ">":
		return enum.IPredSGT
	case "<=":
		return enum.IPredSLE
	default: // >=
		return enum.IPredSGE
	}
}

func floatPred(op string) enum.FPred {
	switch op {
	case "==":
		return enum.FPredOEQ
	case "!=":
		return enum.FPredONE
	case "<":
		return enum.FPredOLT
	case ">":
		return enum.FPredOGT
	case "<=":
		return enum.FPredOLE
	default: // >=
		return enum.FPredOGE
	}
}

func (c *Compiler) compileCall(node *ASTNode) (value.Value, string, error) {
	if node.Name == "print" {
		return c.compilePrint(node)
	}
	sym, ok := c.env.Resolve(node.Name)
	if !ok {
		return nil, "", c.semErr(node, "undefined symbol %q", node.Name)
	}
	if sym.Kind != SymFunction {
		return nil, "", c.semErr(node, "%q is not a function", node.Name)
	}
	if len(node.Children) != len(sym.ParamTypes) {
		return nil, "", c.semErr(node, "function %q expects %d argument(s), got %d",
			node.Name, len(sym.ParamTypes), len(node.Children))
	}
	var args []value.Value
	for i, argNode := range node.Children {
		val, vt, err := c.compileExpr(argNode)
		if err != nil {
			return nil, "", err
		}
		val, err = c.coerce(argNode, val, vt, sym.ParamTypes[i])
		if err != nil {
			return nil, "", c.semErr(argNode, "argument %d of %q: type mismatch: expected %s, got %s",
				i+1, node.Name, sym.ParamTypes[i], vt)
		}
		args = append(args, val)
	}
	call := c.block.NewCall(sym.Handle, args...)
	return call, sym.RetType, nil
}

// compilePrint lowers the built-in formatted-output call to the variadic
// external printf declaration. Arguments after the format string are
// matched positionally against the %-specifiers.
func (c *Compiler) compilePrint(node *ASTNode) (value.Value, string, error) {
	if len(node.Children) == 0 || node.Children[0].Kind != NodeStringLit {
		return nil, "", c.semErr(node, "print requires a string literal format as its first argument")
	}
	format := node.Children[0].Str
	specs, err := formatSpecifiers(format)
	if err != nil {
		return nil, "", c.semErr(node.Children[0], "%s", err)
	}
	argNodes := node.Children[1:]
	if len(specs) != len(argNodes) {
		return nil, "", c.semErr(node, "print format has %d specifier(s) but %d argument(s) were given",
			len(specs), len(argNodes))
	}

	args := []value.Value{c.internString(rewriteFormat(format))}
	for i, argNode := range argNodes {
		val, vt, err := c.compileExpr(argNode)
		if err != nil {
			return nil, "", err
		}
		want := specs[i]
		switch want {
		case "int":
			if vt != "int" {
				return nil, "", c.semErr(argNode, "print argument %d: %%d expects int, got %s", i+1, vt)
			}
		case "float":
			if vt == "int" {
				val, vt = c.block.NewSIToFP(val, types.Double), "float"
			}
			if vt != "float" {
				return nil, "", c.semErr(argNode, "print argument %d: %%f expects float, got %s", i+1, vt)
			}
		case "str":
			if vt != "str" {
				return nil, "", c.semErr(argNode, "print argument %d: %%s expects str, got %s", i+1, vt)
			}
		case "bool":
			if vt != "bool" {
				return nil, "", c.semErr(argNode, "print argument %d: %%b expects bool, got %s", i+1, vt)
			}
			val = c.block.NewZExt(val, types.I32)
		}
		args = append(args, val)
	}
	c.block.NewCall(c.printf, args...)
	return nil, "", nil
}

// formatSpecifiers extracts the expected argument types from a print
// format string. %i and %d take int, %f float, %s str, %b bool; %% is a
// literal percent sign.
func formatSpecifiers(format string) ([]string, error) {
	var specs []string
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 >= len(format) {
			return nil, fmt.Errorf("print format ends with a bare %%")
		}
		i++
		switch format[i] {
		case 'i', 'd':
			specs = append(specs, "int")
		case 'f':
			specs = append(specs, "float")
		case 's':
			specs = append(specs, "str")
		case 'b':
			specs = append(specs, "bool")
		case '%':
			// literal
		default:
			return nil, fmt.Errorf("unknown print specifier %%%s", string(format[i]))
		}
	}
	return specs, nil
}

// rewriteFormat maps Lime specifiers onto C printf ones: %i becomes %d
// and %b becomes %d (bools are passed as 0/1).
func rewriteFormat(format string) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] == '%' && i+1 < len(format) {
			switch format[i+1] {
			case 'i', 'b':
				sb.WriteString("%d")
				i++
				continue
			}
		}
		sb.WriteByte(format[i])
	}
	return sb.String()
}

// coerce applies the one legal implicit conversion, int→float widening,
// and rejects everything else that does not already match.
func (c *Compiler) coerce(node *ASTNode, val value.Value, from, to string) (value.Value, error) {
	if from == to {
		return val, nil
	}
	if from == "int" && to == "float" {
		return c.block.NewSIToFP(val, types.Double), nil
	}
	return nil, c.semErr(node, "type mismatch: cannot use %s value as %s", typeName(from), to)
}

// internString returns an i8* constant pointing at a private global holding
// the NUL-terminated string. Identical literals share one global.
func (c *Compiler) internString(s string) constant.Constant {
	if ptr, ok := c.strings[s]; ok {
		return ptr
	}
	data := constant.NewCharArrayFromString(s + "\x00")
	g := c.module.NewGlobalDef(fmt.Sprintf(".str.%d", len(c.strings)), data)
	g.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	ptr := constant.NewGetElementPtr(data.Typ, g, zero, zero)
	c.strings[s] = ptr
	return ptr
}

func (c *Compiler) nextBlockID() int {
	c.blocks++
	return c.blocks
}

func (c *Compiler) semErr(node *ASTNode, format string, args ...any) error {
	return semanticErr(c.file, node.Line, node.Col, format, args...)
}

func typeName(t string) string {
	if t == "" {
		return "void"
	}
	return t
}
