package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/techseo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of techseo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "techseo version %s\n", strings.TrimSpace(techseo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
