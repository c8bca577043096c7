package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/relq/relq/pkg/catalog"
	"github.com/relq/relq/pkg/plan"
	"github.com/relq/relq/pkg/planner"
	"github.com/relq/relq/pkg/query"
)

// RunInteractive starts a REPL over an already loaded catalog.
// Queries are evaluated as typed; ".tables" lists the catalog and
// ".explain <query>" prints a plan instead of running it.
func RunInteractive(cat *catalog.Catalog) error {
	fmt.Println("Interactive mode enabled. Type 'exit' or 'quit' to leave.")
	fmt.Println("Commands: .tables, .explain <query>")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "relq> ",
		HistoryFile:     "", // in-memory history for this session
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "exit" || line == "quit":
			return nil
		case line == ".tables":
			for _, name := range cat.Names() {
				fmt.Println(name)
			}
			continue
		case strings.HasPrefix(line, ".explain "):
			if err := explainLine(cat, strings.TrimPrefix(line, ".explain ")); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			continue
		}

		if err := RunQuery(cat, line); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}

func explainLine(cat *catalog.Catalog, input string) error {
	prog, err := query.Parse(input)
	if err != nil {
		return err
	}
	op, err := planner.New(cat).Build(prog)
	if err != nil {
		return err
	}
	fmt.Print(plan.Format(op))
	return nil
}
