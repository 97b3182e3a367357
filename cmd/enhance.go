package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var enhanceProfiles bool

// enhanceCmd runs the identity decoration pass over an arbitrary JSON
// document from a file or stdin, without talking to the gateway. Useful to
// post-process payloads captured elsewhere.
var enhanceCmd = &cobra.Command{
	Use:   "enhance [file]",
	Short: "Decorate a JSON document with the identities of the addresses it contains",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			term.Error("Reading the payload didn't work: %s", err)
			return
		}

		dir, closeIndex := newDirectory()
		defer closeIndex()

		stop := term.Spinner("Resolving addresses...")
		out := newEnhancer(dir).EnhanceJSON(cmd.Context(), raw, enhanceProfiles)
		stop()
		fmt.Fprintln(term.Writer(), string(pretty(out)))
	},
}

func init() {
	enhanceCmd.Flags().BoolVarP(&enhanceProfiles, "profile", "p", false, "embed full identity profiles instead of just names")
	rootCmd.AddCommand(enhanceCmd)
}
