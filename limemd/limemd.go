// Package limemd extracts executable compiler test cases from Markdown
// documents. A test case is a heading starting with "Test: ", followed by
// one `lime` code fence holding the input program and one or more
// assertion fences:
//
//	ast      the expected s-expression dump of the parsed program
//	error    a substring of the expected compile error
//	ir       substrings (one per line) expected in the emitted IR text
package limemd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// AssertionKind is the fence language of an assertion block.
type AssertionKind string

const (
	AssertAST   AssertionKind = "ast"
	AssertError AssertionKind = "error"
	AssertIR    AssertionKind = "ir"
)

const inputFence = "lime"

// Assertion is one expectation attached to a test case.
type Assertion struct {
	Kind    AssertionKind
	Content string
}

// TestCase is one complete case: a name, the Lime input program, and the
// assertions to check against it.
type TestCase struct {
	Name       string
	Input      string
	Assertions []Assertion
}

// Extract parses a Markdown document and returns every test case in it.
// Malformed documents (fences outside a test, a test without input or
// without assertions) are errors, so broken test files fail loudly
// instead of silently skipping cases.
func Extract(markdown string) ([]TestCase, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	flush := func() error {
		if current == nil {
			return nil
		}
		if current.Input == "" {
			return fmt.Errorf("test %q has no %s input fence", current.Name, inputFence)
		}
		if len(current.Assertions) == 0 {
			return fmt.Errorf("test %q has no assertion fences", current.Name)
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, source)
			if strings.HasPrefix(heading, "Test: ") {
				if err := flush(); err != nil {
					return ast.WalkStop, err
				}
				current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}
			}
		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			content := strings.TrimRight(fenceContent(n, source), "\n")
			switch {
			case lang == "":
				// Unlabeled fences are prose, not part of a test.
			case current == nil:
				return ast.WalkStop, fmt.Errorf("%s fence found outside of a test case", lang)
			case lang == inputFence:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("test %q has multiple input fences", current.Name)
				}
				current.Input = content
			case lang == string(AssertAST) || lang == string(AssertError) || lang == string(AssertIR):
				current.Assertions = append(current.Assertions, Assertion{
					Kind:    AssertionKind(lang),
					Content: content,
				})
			default:
				return ast.WalkStop, fmt.Errorf("unknown fence language %q in test %q", lang, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(fence *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < fence.Lines().Len(); i++ {
		line := fence.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}
