package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/llir/llvm/ir"
)

// echoTokens lexes the file once more and prints every token to stderr.
// Used by the -tokens flag; it produces no artifact.
func echoTokens(file string, src string) {
	lx := NewLexer(file, src)
	for {
		tok, err := lx.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "lex: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "%s:%d:%d\t%s\t%q\n", filepath.Base(file), tok.Line, tok.Col, tok.Type, tok.Literal)
		if tok.Type == EOF {
			return
		}
	}
}

// astToJSON converts a node to the structure written by the -ast dump.
func astToJSON(node *ASTNode) any {
	if node == nil {
		return nil
	}
	m := map[string]any{"kind": string(node.Kind)}
	if node.Line > 0 {
		m["line"] = node.Line
		m["col"] = node.Col
	}
	switch node.Kind {
	case NodeImport, NodeIdent, NodeStringLit:
		m["value"] = node.Str
	case NodeIntLit:
		m["value"] = node.Int
	case NodeFloatLit:
		m["value"] = node.Float
	case NodeBoolLit:
		m["value"] = node.Bool
	case NodeBinary, NodeUnary:
		m["op"] = node.Op
	}
	if node.Name != "" {
		m["name"] = node.Name
	}
	if node.Kind == NodeFunc {
		var params []map[string]string
		for _, p := range node.Params {
			params = append(params, map[string]string{"name": p.Name, "type": p.Type})
		}
		m["params"] = params
		m["returnType"] = node.RetType
	}
	if node.VarType != "" {
		m["type"] = node.VarType
	}
	for key, child := range map[string]*ASTNode{
		"value": node.Value, "cond": node.Cond, "body": node.Body,
		"else": node.Else, "init": node.Init, "post": node.Post,
	} {
		if child != nil {
			m[key] = astToJSON(child)
		}
	}
	if len(node.Children) > 0 {
		var children []any
		for _, child := range node.Children {
			children = append(children, astToJSON(child))
		}
		m["children"] = children
	}
	return m
}

// writeASTDump serializes the program AST as JSON into dir/ast.json.
func writeASTDump(program *ASTNode, dir string) error {
	data, err := json.MarshalIndent(astToJSON(program), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "ast.json"), append(data, '\n'), 0644)
}

// writeIRDump writes the emitted module text into dir/ir.ll.
func writeIRDump(m *ir.Module, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "ir.ll"), []byte(m.String()), 0644)
}
