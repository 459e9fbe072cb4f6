package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var llmsCmd = &cobra.Command{
	Use:   "llms",
	Short: "Print the llms.txt index",
	Long:  `Builds the llms.txt index from the published, enabled posts that carry both code and steps.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		text, err := a.engine.LLMSText(cmd.Context())
		if err != nil {
			return err
		}
		if text == "" {
			a.logger.Warn("No post qualifies for llms.txt")
			return nil
		}

		if path, _ := cmd.Flags().GetString("output"); path != "" {
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			a.logger.Info("llms.txt written", "path", path)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(llmsCmd)
	llmsCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
