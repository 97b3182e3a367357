package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	VERSION string = "0.1.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show seer version",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Version: %s\n", VERSION)
		fmt.Printf("Contact author at: @tranvictor on Telegram\n")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
