package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/seer/index"
)

// searchCmd queries the local identity index built up by previous resolve
// and call runs. It never touches the network.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search previously resolved identities by name or description",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path, err := index.DefaultPath()
		if err != nil {
			term.Error("Couldn't locate the identity index: %s", err)
			return
		}
		store, err := index.NewStore(path)
		if err != nil {
			term.Error("Couldn't open the identity index: %s", err)
			return
		}
		defer store.Close()

		query := strings.Join(args, " ")
		matches, err := store.Search(query)
		if err != nil {
			term.Error("Search didn't work: %s", err)
			return
		}
		if len(matches) == 0 {
			term.Warn("Nothing matches %q yet. Identities get indexed as you resolve them.", query)
			return
		}

		rows := make([][]string, 0, len(matches))
		for _, m := range matches {
			rows = append(rows, []string{m.Name, m.Address, m.Description, fmt.Sprintf("%d", int(m.Score*1000000))})
		}
		term.Table([]string{"Name", "Address", "Description", "Score"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
