package cmd

import (
	"fmt"
	"strings"

	"github.com/relq/relq/pkg/catalog"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <dbdir>",
	Short: "List the tables of a database directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadDir(args[0])
		if err != nil {
			return err
		}

		for _, name := range cat.Names() {
			table, err := cat.Table(name)
			if err != nil {
				return err
			}
			kinds := table.Kinds()
			parts := make([]string, len(kinds))
			for i, k := range kinds {
				parts[i] = k.String()
			}
			fmt.Printf("%s(%s)\n", name, strings.Join(parts, ", "))
		}
		return nil
	},
}
