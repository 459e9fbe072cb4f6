package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check which posts qualify for TechArticle output",
	Long: `Lists every post with its opt-in flag and whether it passes the validity gate
(at least one code block and at least one step). Fails when an enabled,
published post does not qualify.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		posts, err := a.engine.Repository().List(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tENABLED\tVALID\tTITLE")
		failed := 0
		for _, p := range posts {
			valid := a.engine.IsPostValid(p)
			if p.Enabled && p.IsPublished() && !valid {
				failed++
			}
			fmt.Fprintf(tw, "%d\t%t\t%t\t%s\n", p.ID, p.Enabled, valid, p.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if failed > 0 {
			return fmt.Errorf("%d enabled post(s) carry no code or no steps", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
