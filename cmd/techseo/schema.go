package main

import (
	"fmt"

	"github.com/aretw0/techseo/pkg/schema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <post-id>",
	Short: "Print the TechArticle JSON-LD of a post",
	Long: `Extracts the TechArticle structured data of a post. Nothing is printed when the
post is disabled or carries neither code nor steps. With --head the complete
<script> elements for the page head are printed instead.`,
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

		if head, _ := cmd.Flags().GetBool("head"); head {
			markup, err := a.engine.HeadMarkup(cmd.Context(), post)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), markup)
			return nil
		}

		article, ok := a.engine.Schema(cmd.Context(), post)
		if !ok {
			a.logger.Info("No TechArticle for post", "post_id", post.ID, "enabled", post.Enabled)
			return nil
		}
		body, err := schema.Marshal(article)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().Bool("head", false, "Print the head <script> markup instead of raw JSON-LD")
}
