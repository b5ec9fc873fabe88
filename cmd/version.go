package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airlift-sh/airlift/constants"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of the airlift command",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("airlift version %s\n", constants.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
