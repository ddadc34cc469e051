package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `Lime - a small language that compiles to native code through LLVM IR

Usage:
    lime <command> [arguments]

Commands:
    run <file>      Compile and execute a .lime file
    build <file>    Compile a .lime file to LLVM IR (.ll)
    eval <code>     Evaluate inline Lime code
    check <file>    Parse, resolve and type-check a .lime file
    help            Show this help message

Examples:
    lime run examples/fib.lime
    lime build -o program.ll hello.lime
    lime eval 'fn main() -> int { return 42; }'
    lime check -ast myfile.lime

Use "lime <command> -h" for more information about a command.
`)
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	tokens := fs.Bool("tokens", false, "Echo the token stream to stderr")
	astDump := fs.Bool("ast", false, "Write the AST to the debug directory as JSON")
	irDump := fs.Bool("ir", false, "Write the emitted IR to the debug directory")
	noRun := fs.Bool("norun", false, "Stop after IR emission; do not execute")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime run [-tokens] [-ast] [-ir] [-norun] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile and execute a .lime file\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	result, err := CompileFile(fs.Arg(0), Options{
		DebugLexer:    *tokens,
		DebugParser:   *astDump,
		DebugCompiler: *irDump,
		NoRun:         *noRun,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if result.Ran {
		fmt.Printf("program returned %d\n", result.ExitCode)
	}
}

func buildCommand(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output file path (default: <filename>.ll)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime build [-o output] <file>\n")
		fmt.Fprintf(os.Stderr, "Compile a .lime file to LLVM IR\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	outputFile := *output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(filename, ".lime") + ".ll"
	}

	result, err := CompileFile(filename, Options{NoRun: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	irText := result.Module.String()
	if err := os.WriteFile(outputFile, []byte(irText), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing IR file %s: %v\n", outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s (%d bytes)\n", outputFile, len(irText))
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	noRun := fs.Bool("norun", false, "Stop after IR emission; do not execute")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime eval [-norun] <code>\n")
		fmt.Fprintf(os.Stderr, "Evaluate inline Lime code\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one code argument\n")
		fs.Usage()
		os.Exit(1)
	}

	result, err := CompileSource("<eval>", fs.Arg(0), Options{NoRun: *noRun})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if result.Ran {
		fmt.Printf("program returned %d\n", result.ExitCode)
	}
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	astDump := fs.Bool("ast", false, "Print the AST as an s-expression")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lime check [-ast] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse, resolve and type-check a .lime file\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)

	program, err := ResolveImports(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if _, err := NewCompiler().Compile(program); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: no errors found\n", filepath.Base(filename))
	if *astDump {
		fmt.Printf("AST: %s\n", ToSExpr(program))
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "run":
		runCommand(args)
	case "build":
		buildCommand(args)
	case "eval":
		evalCommand(args)
	case "check":
		checkCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
