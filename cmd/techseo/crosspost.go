package main

import (
	"fmt"

	"github.com/aretw0/techseo/internal/presentation/tui"
	"github.com/aretw0/techseo/pkg/crosspost"
	"github.com/spf13/cobra"
)

var crosspostCmd = &cobra.Command{
	Use:   "crosspost <post-id>",
	Short: "Render a post for a syndication platform",
	Long: `Renders a post for devto, medium, linkedin, x or bsky. Without --platform every
platform is rendered in turn. --render previews the result in the terminal:
Markdown platforms are styled and short-form ones show their character usage.`,
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

		name, _ := cmd.Flags().GetString("platform")
		platforms := crosspost.Platforms()
		if name != "" {
			p, ok := crosspost.ParsePlatform(name)
			if !ok {
				return fmt.Errorf("unsupported platform %q", name)
			}
			platforms = []crosspost.Platform{p}
		}

		render, _ := cmd.Flags().GetBool("render")
		var renderer func(string) (string, error)
		if render {
			width, _ := cmd.Flags().GetInt("width")
			if renderer, err = tui.NewRenderer(width); err != nil {
				return err
			}
		}

		formatter := crosspost.New(crosspost.WithLimits(a.cfg.CrossPosting.PlatformLimits()))
		out := cmd.OutOrStdout()
		for i, p := range platforms {
			content, err := a.engine.CrossPost(cmd.Context(), string(p), post)
			if err != nil {
				return err
			}
			if len(platforms) > 1 {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "==> %s\n", p)
			}
			if renderer != nil {
				if err := tui.Preview(out, p, content, formatter.Limit(p), renderer); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(out, content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(crosspostCmd)
	crosspostCmd.Flags().StringP("platform", "p", "", "Target platform (devto, medium, linkedin, x, bsky)")
	crosspostCmd.Flags().Bool("render", false, "Preview the result in the terminal")
	crosspostCmd.Flags().Int("width", 80, "Word wrap width of the preview")
}
