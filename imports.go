package main

import (
	"os"
	"path/filepath"
	"strings"
)

// parseFile lexes and parses a single source file.
func parseFile(path string) (*ASTNode, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, importErr(path, "cannot read file: %v", err)
	}
	p, err := NewParser(NewLexer(path, string(src)))
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// resolver tracks the state of one import-resolution walk.
type resolver struct {
	active      map[string]bool   // files currently on the DFS path
	activeOrder []string          // same files, in import order
	done        map[string]bool   // files already merged
	declaredIn  map[string]string // top-level name -> file that declared it
	merged      *ASTNode
}

// ResolveImports parses the root file, follows its import statements
// depth-first and merges every file's top-level declarations into a single
// Program. Import paths are resolved relative to the importing file's
// directory, with ".lime" appended when missing. Importing a file that is
// already resolved is a no-op; importing a file that is still being
// resolved is a circular-import error.
func ResolveImports(rootPath string) (*ASTNode, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, importErr(rootPath, "cannot resolve path: %v", err)
	}
	r := &resolver{
		active:     make(map[string]bool),
		done:       make(map[string]bool),
		declaredIn: make(map[string]string),
		merged:     &ASTNode{Kind: NodeProgram, File: rootPath, Line: 1, Col: 1},
	}
	if err := r.resolve(abs); err != nil {
		return nil, err
	}
	return r.merged, nil
}

func (r *resolver) resolve(path string) error {
	if r.done[path] {
		return nil
	}
	if r.active[path] {
		return importErr(path, "circular import: %s", r.cycleString(path))
	}
	r.active[path] = true
	r.activeOrder = append(r.activeOrder, path)
	defer func() {
		delete(r.active, path)
		r.activeOrder = r.activeOrder[:len(r.activeOrder)-1]
	}()

	prog, err := parseFile(path)
	if err != nil {
		return err
	}
	for _, decl := range prog.Children {
		if decl.Kind == NodeImport {
			target := decl.Str
			if filepath.Ext(target) == "" {
				target += ".lime"
			}
			target = filepath.Join(filepath.Dir(path), target)
			if _, statErr := os.Stat(target); statErr != nil {
				return importErr(path, "cannot resolve import %q: no such file", decl.Str)
			}
			if err := r.resolve(target); err != nil {
				return err
			}
			continue
		}
		if prev, ok := r.declaredIn[decl.Name]; ok {
			return importErr(path, "duplicate declaration of %q (already declared in %s)", decl.Name, prev)
		}
		r.declaredIn[decl.Name] = path
		r.merged.Children = append(r.merged.Children, decl)
	}

	r.done[path] = true
	return nil
}

// cycleString renders the import cycle ending at path, e.g.
// "a.lime -> b.lime -> a.lime".
func (r *resolver) cycleString(path string) string {
	start := 0
	for i, p := range r.activeOrder {
		if p == path {
			start = i
			break
		}
	}
	parts := append(append([]string{}, r.activeOrder[start:]...), path)
	for i, p := range parts {
		parts[i] = filepath.Base(p)
	}
	return strings.Join(parts, " -> ")
}
