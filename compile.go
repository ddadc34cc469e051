package main

import (
	"os"
	"path/filepath"

	"github.com/llir/llvm/ir"
)

// Options controls one compilation. The debug flags only add diagnostic
// output; NoRun stops the pipeline after IR emission instead of handing
// the module to the backend.
type Options struct {
	DebugLexer    bool
	DebugParser   bool
	DebugCompiler bool
	NoRun         bool
}

// Result is the outcome of a successful compilation.
type Result struct {
	Module *ir.Module
	// Ran reports whether the backend executed the program; ExitCode is
	// the program's own return value when it did.
	Ran      bool
	ExitCode int
}

// CompileFile runs the whole pipeline on one root source file: import
// resolution (which lexes and parses every reachable file), code
// generation, debug dumps, and finally the external backend unless NoRun.
// The first error from any stage aborts the compilation.
func CompileFile(path string, opts Options) (*Result, error) {
	cfg, err := LoadConfig(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	if opts.DebugLexer {
		if src, readErr := os.ReadFile(path); readErr == nil {
			echoTokens(path, string(src))
		}
	}

	program, err := ResolveImports(path)
	if err != nil {
		return nil, err
	}
	if opts.DebugParser {
		if err := writeASTDump(program, cfg.Debug.Dir); err != nil {
			return nil, err
		}
	}

	module, err := NewCompiler().Compile(program)
	if err != nil {
		return nil, err
	}
	if opts.DebugCompiler {
		if err := writeIRDump(module, cfg.Debug.Dir); err != nil {
			return nil, err
		}
	}

	result := &Result{Module: module}
	if opts.NoRun || cfg.Backend.NoRun {
		return result, nil
	}
	code, err := RunBackend(module, cfg.Backend.Command)
	if err != nil {
		return nil, err
	}
	result.Ran = true
	result.ExitCode = code
	return result, nil
}

// CompileSource compiles inline source text (no imports are followed since
// there is no directory to resolve them against). Used by `lime eval` and
// by tests.
func CompileSource(name string, src string, opts Options) (*Result, error) {
	p, err := NewParser(NewLexer(name, src))
	if err != nil {
		return nil, err
	}
	program, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	for _, decl := range program.Children {
		if decl.Kind == NodeImport {
			return nil, importErr(name, "imports are not allowed in inline source")
		}
	}
	module, err := NewCompiler().Compile(program)
	if err != nil {
		return nil, err
	}
	result := &Result{Module: module}
	if opts.NoRun {
		return result, nil
	}
	cfg := DefaultConfig()
	code, err := RunBackend(module, cfg.Backend.Command)
	if err != nil {
		return nil, err
	}
	result.Ran = true
	result.ExitCode = code
	return result, nil
}
