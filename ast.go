package main

import (
	"strconv"
	"strings"
)

// NodeKind represents different types of AST nodes
type NodeKind string

const (
	NodeProgram   NodeKind = "NodeProgram"
	NodeImport    NodeKind = "NodeImport"
	NodeFunc      NodeKind = "NodeFunc"
	NodeBlock     NodeKind = "NodeBlock"
	NodeLet       NodeKind = "NodeLet"
	NodeAssign    NodeKind = "NodeAssign"
	NodeIf        NodeKind = "NodeIf"
	NodeWhile     NodeKind = "NodeWhile"
	NodeFor       NodeKind = "NodeFor"
	NodeReturn    NodeKind = "NodeReturn"
	NodeBinary    NodeKind = "NodeBinary"
	NodeUnary     NodeKind = "NodeUnary"
	NodeCall      NodeKind = "NodeCall"
	NodeIntLit    NodeKind = "NodeIntLit"
	NodeFloatLit  NodeKind = "NodeFloatLit"
	NodeStringLit NodeKind = "NodeStringLit"
	NodeBoolLit   NodeKind = "NodeBoolLit"
	NodeIdent     NodeKind = "NodeIdent"
)

// Param is one function parameter: name plus declared type.
type Param struct {
	Name string
	Type string
}

// ASTNode represents a node in the Abstract Syntax Tree. Nodes are never
// mutated after the parser builds them and never point back at their
// parent; passes that need parent context carry it on their own stack.
type ASTNode struct {
	Kind NodeKind

	// Source position of the construct (and, for top-level declarations,
	// the file it came from, filled in by the import resolver).
	Line int
	Col  int
	File string

	// NodeIdent, NodeStringLit: the name or decoded literal text.
	// NodeImport: the import path as written.
	Str string
	// NodeIntLit:
	Int int64
	// NodeFloatLit:
	Float float64
	// NodeBoolLit:
	Bool bool
	// NodeBinary, NodeUnary:
	Op string

	// NodeFunc, NodeLet, NodeAssign, NodeCall: the declared or referenced name.
	Name string
	// NodeFunc:
	Params  []Param
	RetType string // "" means void
	// NodeLet: declared type.
	VarType string

	// NodeLet initializer, NodeAssign value, NodeReturn value (each may be nil).
	Value *ASTNode
	// NodeIf, NodeWhile, NodeFor condition.
	Cond *ASTNode
	// NodeIf/NodeWhile/NodeFor/NodeFunc body (a NodeBlock).
	Body *ASTNode
	// NodeIf else branch (a NodeBlock, may be nil).
	Else *ASTNode
	// NodeFor init and post clauses (statements, may be nil).
	Init *ASTNode
	Post *ASTNode

	// NodeProgram declarations, NodeBlock statements, NodeBinary operands
	// (left, right), NodeUnary operand, NodeCall arguments.
	Children []*ASTNode
}

// ToSExpr converts an AST node to its s-expression string representation.
// Tests and the -ast debug dump compare trees through this form.
func ToSExpr(node *ASTNode) string {
	if node == nil {
		return "_"
	}
	switch node.Kind {
	case NodeProgram:
		return "(program" + childSExprs(node.Children) + ")"
	case NodeImport:
		return "(import " + quote(node.Str) + ")"
	case NodeFunc:
		var params []string
		for _, p := range node.Params {
			params = append(params, "("+p.Name+" "+p.Type+")")
		}
		ret := node.RetType
		if ret == "" {
			ret = "void"
		}
		return "(fn " + quote(node.Name) + " (" + strings.Join(params, " ") + ") " + ret + " " + ToSExpr(node.Body) + ")"
	case NodeBlock:
		return "(block" + childSExprs(node.Children) + ")"
	case NodeLet:
		typ := node.VarType
		if typ == "" {
			typ = "_" // inferred from the initializer
		}
		if node.Value == nil {
			return "(let " + quote(node.Name) + " " + typ + ")"
		}
		return "(let " + quote(node.Name) + " " + typ + " " + ToSExpr(node.Value) + ")"
	case NodeAssign:
		return "(assign " + quote(node.Name) + " " + ToSExpr(node.Value) + ")"
	case NodeIf:
		s := "(if " + ToSExpr(node.Cond) + " " + ToSExpr(node.Body)
		if node.Else != nil {
			s += " " + ToSExpr(node.Else)
		}
		return s + ")"
	case NodeWhile:
		return "(while " + ToSExpr(node.Cond) + " " + ToSExpr(node.Body) + ")"
	case NodeFor:
		return "(for " + ToSExpr(node.Init) + " " + ToSExpr(node.Cond) + " " + ToSExpr(node.Post) + " " + ToSExpr(node.Body) + ")"
	case NodeReturn:
		if node.Value == nil {
			return "(return)"
		}
		return "(return " + ToSExpr(node.Value) + ")"
	case NodeBinary:
		return "(binary " + quote(node.Op) + " " + ToSExpr(node.Children[0]) + " " + ToSExpr(node.Children[1]) + ")"
	case NodeUnary:
		return "(unary " + quote(node.Op) + " " + ToSExpr(node.Children[0]) + ")"
	case NodeCall:
		return "(call " + quote(node.Name) + childSExprs(node.Children) + ")"
	case NodeIntLit:
		return "(integer " + strconv.FormatInt(node.Int, 10) + ")"
	case NodeFloatLit:
		return "(float " + strconv.FormatFloat(node.Float, 'g', -1, 64) + ")"
	case NodeStringLit:
		return "(string " + quote(node.Str) + ")"
	case NodeBoolLit:
		return "(bool " + strconv.FormatBool(node.Bool) + ")"
	case NodeIdent:
		return "(ident " + quote(node.Str) + ")"
	default:
		return ""
	}
}

func childSExprs(children []*ASTNode) string {
	var sb strings.Builder
	for _, c := range children {
		sb.WriteString(" ")
		sb.WriteString(ToSExpr(c))
	}
	return sb.String()
}

func quote(s string) string {
	escaped := strings.ReplaceAll(s, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
	return "\"" + escaped + "\""
}
