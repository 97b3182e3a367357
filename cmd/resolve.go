package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/seer/enhance"
	"github.com/tranvictor/seer/ens"
)

var resolveFull bool

// resolveCmd handles both directions: addresses are reverse-resolved to
// names (with the whole profile under --profile), anything with a dot in it
// is treated as a name and forward-resolved.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the ENS name or profile of one or multiple addresses",
	Long: `Resolve takes any mix of addresses and ENS names. Addresses embedded in
longer text are picked out automatically, so you can paste a whole log line.
With --profile, the full identity card (avatar, socials, content hash) is
assembled instead of just the name.`,
	Run: func(cmd *cobra.Command, args []string) {
		para := strings.Join(args, " ")
		addresses := enhance.ExtractAddresses(para)
		names := scanForNames(args)
		if len(addresses) == 0 && len(names) == 0 {
			term.Warn("Couldn't find any addresses or names in the params")
			return
		}

		dir, closeIndex := newDirectory()
		defer closeIndex()

		if len(addresses) > 0 {
			stop := term.Spinner("Resolving...")
			identities := dir.Many(cmd.Context(), addresses, resolveFull)
			stop()
			for _, addr := range addresses {
				printIdentity(identities[addr])
			}
		}
		for _, name := range names {
			resolveName(cmd, dir, name)
		}
	},
}

// scanForNames keeps the args that look like ENS names, i.e. anything
// dotted that is not an address.
func scanForNames(args []string) []string {
	names := []string{}
	for _, arg := range args {
		if strings.Contains(arg, ".") && !strings.HasPrefix(strings.ToLower(arg), "0x") {
			names = append(names, arg)
		}
	}
	return names
}

func resolveName(cmd *cobra.Command, dir *ens.Directory, name string) {
	stop := term.Spinner("Resolving " + name + "...")
	addr, err := dir.Address(cmd.Context(), name)
	stop()
	if err != nil {
		logger.Debug("forward resolution failed", "name", name, "err", err)
		term.Error("%s: resolution unavailable, try again later", name)
		return
	}
	if addr == "" {
		term.Warn("%s: no address bound", name)
		return
	}
	term.Info("%s: %s", name, addr)
}

func printIdentity(id *ens.Identity) {
	if id == nil {
		return
	}
	switch {
	case id.State == ens.StateFailed:
		term.Error("%s: resolution unavailable, try again later", id.Address)
	case id.Name == "":
		term.Warn("%s: no name bound", id.Address)
	case !resolveFull:
		term.Info("%s: %s", id.Address, id.Name)
	default:
		term.Section(id.Name)
		rows := [][2]string{{"Address", id.Address}}
		optional := [][2]string{
			{"Avatar", id.Avatar},
			{"Description", id.Description},
			{"Email", id.Email},
			{"Website", id.Website},
			{"Twitter", id.Twitter},
			{"Github", id.Github},
			{"Discord", id.Discord},
			{"Telegram", id.Telegram},
			{"Content", id.ContentHash},
		}
		for _, row := range optional {
			if row[1] != "" {
				rows = append(rows, row)
			}
		}
		term.Indent().KeyValue(rows)
	}
}

func init() {
	resolveCmd.Flags().BoolVarP(&resolveFull, "profile", "p", false, "assemble the full identity card instead of just the name")
	rootCmd.AddCommand(resolveCmd)
}
