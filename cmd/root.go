package cmd

import (
	"os"

	"github.com/relq/relq/pkg/catalog"
	"github.com/relq/relq/pkg/engine"
	"github.com/relq/relq/pkg/planner"
	"github.com/relq/relq/pkg/query"
	"github.com/spf13/cobra"
)

var (
	OutputFormat    string
	OutputHeader    bool
	OutputTag       bool
	OutputPretty    bool
	InteractiveMode bool
)

var rootCmd = &cobra.Command{
	Use:   "relq <dbdir> [query]",
	Short: "Conjunctive query evaluator over CSV tables",
	Long: `relq evaluates conjunctive (datalog-style) queries over relational
tables stored as CSV files. A database directory holds a schema.txt
declaring each table's column types and one <table>.csv per table.

A query names its output columns in the head and combines relations
in the body; shared variables across atoms express joins, and
comparison atoms add explicit conditions.

Examples:
  relq data/db "Q(x, y) :- R(x, y, z)"
  relq data/db "Q(x, w) :- R(x, y, z), S(x, w), z > 10"
  relq data/db "Q(n) :- Emp(n, 'sales', s), s >= 50000"
  relq -i data/db`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		dbdir := args[0]
		cat, err := catalog.LoadDir(dbdir)
		if err != nil {
			return err
		}

		if InteractiveMode {
			return RunInteractive(cat)
		}
		if len(args) < 2 {
			return cmd.Help()
		}

		return RunQuery(cat, args[1])
	},
}

// RunQuery parses, plans, and evaluates a single query, printing the
// result rows to stdout.
func RunQuery(cat *catalog.Catalog, input string) error {
	prog, err := query.Parse(input)
	if err != nil {
		return err
	}

	op, err := planner.New(cat).Build(prog)
	if err != nil {
		return err
	}

	executor := engine.NewExecutor()
	executor.Format = OutputFormat
	executor.Header = OutputHeader
	executor.Tag = OutputTag
	executor.Pretty = OutputPretty
	return executor.Run(op, os.Stdout)
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&OutputFormat, "format", "f", "csv", "Output format: csv or json")
	rootCmd.PersistentFlags().BoolVar(&OutputHeader, "header", false, "Print a column-name header row (csv only)")
	rootCmd.PersistentFlags().BoolVar(&OutputTag, "tag", false, "Prefix each row with its producing operator's tag (csv only)")
	rootCmd.PersistentFlags().BoolVar(&OutputPretty, "pretty", false, "Align output into padded text columns (csv only)")
	rootCmd.PersistentFlags().BoolVarP(&InteractiveMode, "interactive", "i", false, "Interactive REPL mode")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(validateCmd)
}
