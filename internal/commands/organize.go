package commands

import (
	"fmt"
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desktopcleaner/internal/organize"
)

func newOrganizeCmd(a *app) *cobra.Command {
	var (
		home   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Move files labeled organize into the matching home folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if home == "" {
				h, err := os.UserHomeDir()
				if err != nil {
					return errors.Wrap(err, "resolve home folder")
				}
				home = h
			}
			payload := a.host.Scan()
			if payload.Error != nil {
				return errors.Errorf("scan %s: %s", a.host.Desktop(), *payload.Error)
			}

			out := cmd.OutOrStdout()
			moves, skipped := organize.Plan(home, payload.Files)
			for _, f := range skipped {
				fmt.Fprintf(out, "skip %s: no folder for %q files\n", f.Name, f.Ext)
			}
			if len(moves) == 0 {
				fmt.Fprintln(out, "Nothing to organize.")
				return nil
			}
			moved := 0
			for _, m := range moves {
				if dryRun {
					fmt.Fprintf(out, "would move %s -> %s\n", m.From, m.To)
					continue
				}
				dst, err := organize.Apply(m)
				if err != nil {
					a.log.Warn("organize", zap.String("path", m.From), zap.Error(err))
					fmt.Fprintf(out, "failed %s: %v\n", m.From, err)
					continue
				}
				moved++
				fmt.Fprintf(out, "%s moved %s -> %s\n", a.theme.Emoji("📦"), m.From, dst)
			}
			if !dryRun {
				fmt.Fprintf(out, "%d of %d files moved\n", moved, len(moves))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&home, "home", "", "base folder for Pictures, Documents and the rest (default home)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print moves without touching files")
	return cmd
}
