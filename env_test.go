package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestEnvDeclareAndResolve(t *testing.T) {
	env := NewEnv(nil)
	be.Err(t, env.Declare(&Symbol{Name: "x", Kind: SymVariable, Type: "int"}), nil)

	sym, ok := env.Resolve("x")
	be.True(t, ok)
	be.Equal(t, sym.Type, "int")
}

func TestEnvResolveMissing(t *testing.T) {
	env := NewEnv(nil)
	_, ok := env.Resolve("nope")
	be.True(t, !ok)
}

func TestEnvRedeclarationInSameFrame(t *testing.T) {
	env := NewEnv(nil)
	be.Err(t, env.Declare(&Symbol{Name: "x", Kind: SymVariable, Type: "int"}), nil)

	err := env.Declare(&Symbol{Name: "x", Kind: SymVariable, Type: "float"})
	be.True(t, err != nil)
}

func TestEnvResolveWalksParents(t *testing.T) {
	outer := NewEnv(nil)
	be.Err(t, outer.Declare(&Symbol{Name: "g", Kind: SymFunction, RetType: "int"}), nil)

	inner := NewEnv(NewEnv(outer))
	sym, ok := inner.Resolve("g")
	be.True(t, ok)
	be.Equal(t, sym.Kind, SymFunction)
}

func TestEnvShadowing(t *testing.T) {
	outer := NewEnv(nil)
	be.Err(t, outer.Declare(&Symbol{Name: "x", Kind: SymVariable, Type: "int"}), nil)

	inner := NewEnv(outer)
	be.Err(t, inner.Declare(&Symbol{Name: "x", Kind: SymVariable, Type: "str"}), nil)

	sym, ok := inner.Resolve("x")
	be.True(t, ok)
	be.Equal(t, sym.Type, "str")

	// The outer binding is untouched.
	sym, ok = outer.Resolve("x")
	be.True(t, ok)
	be.Equal(t, sym.Type, "int")
}

func TestEnvSiblingFramesAreIndependent(t *testing.T) {
	outer := NewEnv(nil)

	left := NewEnv(outer)
	be.Err(t, left.Declare(&Symbol{Name: "x", Kind: SymVariable, Type: "int"}), nil)

	right := NewEnv(outer)
	_, ok := right.Resolve("x")
	be.True(t, !ok)
}
