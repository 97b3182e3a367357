package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tranvictor/seer/mcp"
)

// operationsCmd lists what the gateway can do. With a query it narrows the
// catalog by fuzzy match. The list works offline too, falling back to the
// built-in catalog when the gateway is unreachable.
var operationsCmd = &cobra.Command{
	Use:   "operations [query]",
	Short: "List the gateway's operations, optionally filtered by a fuzzy query",
	Run: func(cmd *cobra.Command, args []string) {
		inv := newInvoker()
		stop := term.Spinner("Fetching operation catalog...")
		ops := inv.ListOperations(cmd.Context())
		stop()

		if len(args) > 0 {
			ops = mcp.SearchOperations(ops, strings.Join(args, " "))
			if len(ops) == 0 {
				term.Warn("No operation matches %q", strings.Join(args, " "))
				return
			}
		}

		titler := cases.Title(language.English)
		rows := make([][]string, 0, len(ops))
		for _, op := range ops {
			label := titler.String(strings.ReplaceAll(op.Name, "_", " "))
			rows = append(rows, []string{op.Name, label, op.Description})
		}
		term.Table([]string{"Operation", "Label", "Description"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(operationsCmd)
}
