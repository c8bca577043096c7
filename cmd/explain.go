package cmd

import (
	"fmt"

	"github.com/relq/relq/pkg/catalog"
	"github.com/relq/relq/pkg/plan"
	"github.com/relq/relq/pkg/planner"
	"github.com/relq/relq/pkg/query"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <dbdir> <query>",
	Short: "Print the operator tree for a query without running it",
	Long: `Parse and plan a query, then print the resulting operator tree.

Examples:
  relq explain data/db "Q(x, w) :- R(x, y, z), S(x, w), z > 10"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadDir(args[0])
		if err != nil {
			return err
		}

		prog, err := query.Parse(args[1])
		if err != nil {
			return err
		}

		op, err := planner.New(cat).Build(prog)
		if err != nil {
			return err
		}

		fmt.Print(plan.Format(op))
		return nil
	},
}
