package main

import "github.com/llir/llvm/ir/value"

// SymbolKind distinguishes variables from functions.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
)

// Symbol is a resolved name: its declared language type (or signature for
// functions) and the backend handle. The handle is opaque to the front
// end: an alloca pointer for variables, an *ir.Func for functions.
type Symbol struct {
	Name string
	Kind SymbolKind

	// SymVariable: the declared type name ("int", "float", "bool", "str").
	Type string

	// SymFunction: parameter types in order and the return type ("" for void).
	ParamTypes []string
	RetType    string

	// The LLVM value backing this symbol.
	Handle value.Value
}

// Env is one lexical scope frame: a name→symbol mapping chained to its
// enclosing frame. Frames live only for the code-generation pass over
// their block; the parent link is non-owning.
type Env struct {
	records map[string]*Symbol
	parent  *Env
}

// NewEnv creates a frame with an optional parent scope.
func NewEnv(parent *Env) *Env {
	return &Env{records: make(map[string]*Symbol), parent: parent}
}

// Declare binds a symbol in this frame. Declaring a name already present
// in this same frame is an error; shadowing an enclosing frame is legal.
func (e *Env) Declare(sym *Symbol) error {
	if _, ok := e.records[sym.Name]; ok {
		return semanticErr("", 0, 0, "%q is already declared in this scope", sym.Name)
	}
	e.records[sym.Name] = sym
	return nil
}

// Resolve looks a name up, walking from this frame to the outermost.
func (e *Env) Resolve(name string) (*Symbol, bool) {
	if sym, ok := e.records[name]; ok {
		return sym, true
	}
	if e.parent != nil {
		return e.parent.Resolve(name)
	}
	return nil, false
}
