package main

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/ctpl-go/ctpl"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const replBanner = `ctpl - interactive expression shell`

// runREPL starts an interactive loop that evaluates one expression per line
// against a single environment shared across the whole session, so bindings
// set with :set persist between lines.
func runREPL(env *ctpl.Environment) {
	greenColor.Println(replBanner)
	cyanColor.Println("Type an expression and press enter.")
	cyanColor.Println("Commands: :set NAME = VALUE ;   :env   :quit")

	rl, err := readline.New("ctpl> ")
	if err != nil {
		fail(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			break // EOF (Ctrl+D) or readline error: exit quietly
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			break
		}
		rl.SaveHistory(line)

		if strings.HasPrefix(line, ":") {
			handleReplCommand(line, env)
			continue
		}

		v, err := ctpl.EvaluateExpression("repl", line, env)
		if err != nil {
			redColor.Println(err)
			continue
		}
		yellowColor.Println(v.String())
	}
}

func handleReplCommand(line string, env *ctpl.Environment) {
	switch {
	case line == ":env":
		names := env.Names()
		sort.Strings(names)
		for _, name := range names {
			v, _ := env.Lookup(name)
			blueColor.Printf("%s = %s\n", name, v.String())
		}

	case strings.HasPrefix(line, ":set "):
		binding := strings.TrimPrefix(line, ":set ")
		if err := env.ParseDescription("repl", binding); err != nil {
			redColor.Println(err)
		}

	default:
		redColor.Println("unknown command; try :set NAME = VALUE ; , :env, or :quit")
	}
}
