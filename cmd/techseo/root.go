package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "techseo",
	Short: "techseo turns technical posts into structured data and syndication copy",
	Long: `techseo reads posts written as block markup and produces TechArticle JSON-LD,
platform-specific cross-posting copy and an llms.txt index. It can also serve
them over HTTP and MCP and talk to Google Search Console.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing the posts (overrides posts_dir)")
	rootCmd.PersistentFlags().String("config", "techseo.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
