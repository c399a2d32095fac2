package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"desktopcleaner/internal/model"
	"desktopcleaner/internal/ui"
	"desktopcleaner/internal/weekly"
)

func newScanCmd(a *app) *cobra.Command {
	var asJSON bool
	var minScore float64
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List desktop files with their trash score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload := a.host.Scan()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(payload); err != nil {
					return errors.Wrap(err, "encode scan result")
				}
				return nil
			}
			if payload.Error != nil {
				return errors.Errorf("scan %s: %s", a.host.Desktop(), *payload.Error)
			}
			printScan(out, a.theme, a.host.Desktop(), payload.Files, minScore)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw scan payload")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "only list files scoring at least this much")
	return cmd
}

func printScan(out io.Writer, theme ui.Theme, dir string, files []model.FileRecord, minScore float64) {
	fmt.Fprintf(out, "DESKTOP %s\n", dir)
	if len(files) == 0 {
		fmt.Fprintln(out, "No files found.")
	}
	for _, f := range files {
		score := 0.0
		if f.TrashScore != nil {
			score = *f.TrashScore
		}
		if score < minScore {
			continue
		}
		fmt.Fprintf(out, "%s %8s  %-40s %-9s %-9s %s\n",
			theme.Score(score),
			ui.FormatSize(f.SizeBytes),
			f.Name,
			f.UserLabel.Short(),
			f.UserCategory.Short(),
			strings.Join(f.TrashReasons, ","))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d files, %s\n", len(files), ui.FormatSize(model.TotalSize(files)))
	fmt.Fprintf(out, "%s cleanliness %s\n", theme.Emoji("🧹"), theme.Gauge(weekly.Percent(len(files)), 24))
}
