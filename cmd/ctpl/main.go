// Command ctpl renders a text template against an environment of bound
// names, or starts an interactive REPL for evaluating expressions.
//
// Usage:
//
//	ctpl [options] [file]
//
// Options:
//
//	-e EXPR       Evaluate a single expression instead of rendering a file
//	-o FILE       Write rendered output to FILE instead of stdout
//	-env FILE     Load bindings from an environment description file
//	              (repeatable; later files shadow earlier ones)
//	-set BINDING  Load bindings from an inline "name = value ;" string
//	              (repeatable, applied after every -env)
//	-i            Start an interactive REPL
//	-debug        Enable debug logging to stderr
//
// Examples:
//
//	ctpl -e "1 + 2"
//	ctpl -env vars.env template.txt
//	ctpl -set 'x = 5 ;' -e "x * 2"
//	ctpl -i
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ctpl-go/ctpl"
)

// stringList accumulates repeated occurrences of a flag into an ordered
// slice (used for -env and -set, both of which may be given more than once).
type stringList []string

func (l *stringList) String() string { return fmt.Sprint([]string(*l)) }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	var (
		expression = flag.String("e", "", "evaluate an expression instead of rendering a file")
		outPath    = flag.String("o", "", "write output to this file instead of stdout")
		interacive = flag.Bool("i", false, "start an interactive REPL")
		debug      = flag.Bool("debug", false, "enable debug logging to stderr")
		envFiles   stringList
		sets       stringList
	)
	flag.Var(&envFiles, "env", "load bindings from an environment description file (repeatable)")
	flag.Var(&sets, "set", "load bindings from an inline binding string (repeatable)")
	flag.Parse()

	ctpl.SetDebug(*debug)

	env, err := buildEnvironment(envFiles, sets)
	if err != nil {
		fail(err)
	}

	switch {
	case *interacive:
		runREPL(env)
	case *expression != "":
		runExpression(*expression, env, *outPath)
	case flag.NArg() > 0:
		runFile(flag.Arg(0), env, *outPath)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

// buildEnvironment loads -env files in order, then applies -set strings in
// order, so that a later entry of either kind shadows an earlier one for the
// same name (§4.6).
func buildEnvironment(envFiles, sets []string) (*ctpl.Environment, error) {
	env := ctpl.NewEnvironment()
	for _, path := range envFiles {
		if err := loadEnvFile(env, path); err != nil {
			return nil, err
		}
	}
	for _, binding := range sets {
		if err := env.ParseDescription("-set", binding); err != nil {
			return nil, err
		}
	}
	return env, nil
}

func loadEnvFile(env *ctpl.Environment, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading environment file %q: %w", path, err)
	}
	return env.ParseDescription(path, string(data))
}

func runExpression(expr string, env *ctpl.Environment, outPath string) {
	v, err := ctpl.EvaluateExpression("-e", expr, env)
	if err != nil {
		fail(err)
	}
	writeResult(outPath, v.String()+"\n")
}

func runFile(path string, env *ctpl.Environment, outPath string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fail(err)
	}
	tmpl, err := ctpl.Parse(path, string(src))
	if err != nil {
		fail(err)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		out = f
	}
	if err := tmpl.Render(env, out); err != nil {
		fail(err)
	}
}

func writeResult(outPath, text string) {
	if outPath == "" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
