// Command replline is a minimal demo REPL: it wires pkg/replline to a
// small four-operation arithmetic evaluator, enough to exercise the
// editor end to end without pulling in a real scripting language.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattferris/replline/pkg/replerr"
	"github.com/mattferris/replline/pkg/replline"
)

const helpText = `replline - a multi-line terminal REPL line editor

USAGE:
	replline               Start the interactive editor
	replline -history path  Use an alternate history file

OPTIONS:
	-history string   Path to the JSON history file (default ".repl.history")
	-h, -help         Show this help message

Type an arithmetic expression and press Enter to evaluate it. Ctrl-O
splits a line, Ctrl-R starts a reverse history search, Ctrl-D exits.
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, helpText) }

	historyPath := flag.String("history", ".repl.history", "Path to the JSON history file")
	showHelp := flag.Bool("help", false, "Show help message")
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Parse()

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	ed, err := replline.New(
		replline.WithHistoryFilepath(*historyPath),
		replline.WithPrompts(">> ", ".. "),
		replline.WithReverseSearchPrompt("(reverse-i-search): "),
		replline.WithMessages(
			"replline - type an arithmetic expression, Ctrl-D to exit",
			"goodbye",
		),
		replline.WithEvaluator(evaluate),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replline: %v\n", err)
		os.Exit(1)
	}

	if err := ed.Start(); err != nil {
		kind := "error"
		if replerr.Is(err, replerr.IO) {
			kind = "I/O error"
		}
		fmt.Fprintf(os.Stderr, "replline: %s: %v\n", kind, err)
		os.Exit(1)
	}
}

func evaluate(source string) error {
	v, err := evalExpr(source)
	if err != nil {
		fmt.Fprintf(os.Stdout, "error: %v\r\n", err)
		return nil
	}
	fmt.Fprintf(os.Stdout, "= %g\r\n", v)
	return nil
}
