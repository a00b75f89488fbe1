package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:   "linkcheck",
		Short: "Dry-run Asana task link detection on a GitHub body",
		Long: `Runs a body (and optionally its previous revision) through the same
extraction, diff and rendering as the webhook, without calling Asana.

Examples:
  linkcheck --body pr.md
  linkcheck --body new.md --previous old.md --action edited
  linkcheck --body pr.md --action closed --merged --project 1 --merged-section 3
  cat pr.md | linkcheck --body - --json`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.bodyPath, "body", "b", "", "file holding the current body (- for stdin)")
	f.StringVarP(&opts.previousPath, "previous", "p", "", "file holding the body before an edit")
	f.StringVarP(&opts.action, "action", "a", opts.action, "webhook action (opened, edited, closed, ...)")
	f.StringVar(&opts.kind, "kind", opts.kind, "entity kind: issue, pull_request or comment")
	f.StringVarP(&opts.title, "title", "t", "", "entity title")
	f.StringVarP(&opts.url, "url", "u", opts.url, "entity html_url")
	f.BoolVar(&opts.merged, "merged", false, "mark the pull request as merged")
	f.StringVar(&opts.project, "project", "", "Asana project gid used for moves")
	f.StringVar(&opts.prOpenSection, "pr-open-section", "", "section gid for open pull requests")
	f.StringVar(&opts.mergedSection, "merged-section", "", "section gid for merged pull requests")
	f.BoolVarP(&opts.json, "json", "j", false, "output as JSON")
	_ = cmd.MarkFlagRequired("body")

	return cmd
}
