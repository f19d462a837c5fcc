package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/nyx/internal/gitsource"
	"github.com/conorfennell/nyx/internal/seed"
)

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed SOURCE",
		Short: "Load users, events and participants from YAML fixtures",
		Long: "SOURCE is a directory of *.yaml fixture files or a git repository URL.\n" +
			"Repositories are cloned into --seed-repos, or pulled when already present.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if gitsource.IsURL(root) {
				dir, err := gitsource.Sync(cmd.Context(), root, c.cfg.Seed.Repos)
				if err != nil {
					return err
				}
				root = dir
			}

			report, err := seed.NewLoader(c.db, c.posters, c.now, 0).Run(cmd.Context(), root)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Loaded %d files: %d users, %d events, %d participants, %d skipped, %d errors\n",
				report.Files, report.Users, report.Events, report.Participants, report.Skipped, len(report.Errors))
			for _, e := range report.Errors {
				fmt.Fprintf(c.out, "- %s\n", e)
			}
			return nil
		},
	}
}
