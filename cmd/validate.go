package cmd

import (
	"fmt"

	"github.com/relq/relq/pkg/query"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <query>",
	Short: "Check a query's syntax without evaluating it",
	Long: `Parse a query and report whether it is syntactically valid.

Examples:
  relq validate "Q(x) :- R(x, y), y != 'done'"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prog, err := query.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("valid: %s\n", prog)
		return nil
	},
}
