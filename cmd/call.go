package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	callArgs     string
	callProfiles bool
	callRaw      bool
)

// callCmd invokes one gateway operation and prints the result as JSON,
// decorated with the identities of every address found in it.
var callCmd = &cobra.Command{
	Use:   "call <operation>",
	Short: "Call a gateway operation and print its enhanced result",
	Long: `Call invokes one operation on the gateway, e.g.:

	seer call search_collections --args '{"query": "pudgy"}'

Every ethereum address in the result is resolved and the output carries a
_resolvedAddresses map next to the original fields. Use --raw to skip the
resolution pass.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		params := map[string]any{}
		if callArgs != "" {
			if err := json.Unmarshal([]byte(callArgs), &params); err != nil {
				term.Error("--args must be a JSON object: %s", err)
				return
			}
		}

		inv := newInvoker()
		stop := term.Spinner("Calling " + args[0] + "...")
		result, err := inv.CallOperation(cmd.Context(), args[0], params)
		stop()
		if err != nil {
			logger.Debug("operation call failed", "operation", args[0], "err", err)
			term.Error("Calling %s didn't work, please try again later", args[0])
			return
		}

		out := []byte(result)
		if !callRaw {
			dir, closeIndex := newDirectory()
			defer closeIndex()
			out = newEnhancer(dir).EnhanceJSON(cmd.Context(), out, callProfiles)
		}
		fmt.Fprintln(term.Writer(), string(pretty(out)))
	},
}

// pretty re-indents buf when it is valid JSON, otherwise returns it as is.
func pretty(buf []byte) []byte {
	var v any
	if err := json.Unmarshal(buf, &v); err != nil {
		return buf
	}
	indented, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return buf
	}
	return indented
}

func init() {
	callCmd.Flags().StringVarP(&callArgs, "args", "a", "", "operation arguments as a JSON object")
	callCmd.Flags().BoolVarP(&callProfiles, "profile", "p", false, "embed full identity profiles instead of just names")
	callCmd.Flags().BoolVar(&callRaw, "raw", false, "print the result exactly as the gateway returned it")
	rootCmd.AddCommand(callCmd)
}
