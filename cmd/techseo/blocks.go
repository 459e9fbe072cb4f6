package main

import (
	"fmt"

	"github.com/aretw0/techseo/internal/presentation/graph"
	"github.com/aretw0/techseo/pkg/blocks"
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks <post-id>",
	Short: "Export the block tree of a post as a Mermaid diagram",
	Long: `Parses the post content and outputs a Mermaid diagram (graph TD) of its block tree.
Code blocks and steps, the inputs of the TechArticle schema, are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		post, err := a.post(cmd, args[0])
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if plain, _ := cmd.Flags().GetBool("plain"); !plain {
			overlay = &graph.Overlay{Code: true, Steps: true}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(post.Title, blocks.Tree(post), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.Flags().Bool("plain", false, "Skip the highlight styles")
}
