// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/seer/config"
	"github.com/tranvictor/seer/ui"
)

var (
	verbose bool

	cfg    config.Config
	logger *slog.Logger
	term   ui.UI
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seer",
	Short: "Look up who is behind ethereum addresses and query NFT marketplace data",
	Long: fmt.Sprintf(`Seer is a command line tool to query NFT marketplace data and put names
on the ethereum addresses it finds along the way.

Seer supports you on different ends:

	1. It talks to a marketplace data gateway so you can list and call its
	operations (collection search, item lookups, wallet activity...) from
	the command line.

	2. It resolves addresses to their ENS names and profiles (avatar,
	twitter, github...) using a set of public mainnet nodes, and decorates
	every payload it returns with the identities it found.

	3. It keeps a local full-text index of every identity it has resolved
	so you can search them later without touching the network.

By default, Seer talks to %s and uses a set of public
mainnet nodes for name resolution. You can point it elsewhere by setting
the following env vars:
	1. Gateway endpoint: %s
	2. Gateway bearer token: %s
	3. Custom mainnet node, tried before the public ones: %s

Note: Seer will only check if the env vars are not empty and take the env
vars blindly, it will not check if it is a valid url or not, the error will
pop up during its command execution instead.

For more information or support, reach me at https://github.com/tranvictor.`,
		config.DefaultGatewayURL,
		config.GatewayURLVar,
		config.GatewayTokenVar,
		config.EthereumNodeVar,
	),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.FromEnv()
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		term = ui.NewTerminalUI()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every network exchange and resolution attempt to stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
