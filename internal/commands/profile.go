package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"desktopcleaner/internal/model"
	"desktopcleaner/internal/ui"
)

func newProfileCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Summarize every label and category recorded so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.host.ProfileSummary()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(p); err != nil {
					return errors.Wrap(err, "encode profile")
				}
				return nil
			}
			printProfile(out, a.theme, p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw summary")
	return cmd
}

func printProfile(out io.Writer, theme ui.Theme, p model.ProfileSummary) {
	fmt.Fprintf(out, "records: %d   labeled: %d   categorized: %d\n", p.TotalRecords, p.LabeledRecords, p.CategorizedRecords)
	fmt.Fprintf(out, "top label: %s   top category: %s\n", orNone(p.TopLabel), orNone(p.TopCategory))
	for _, h := range []struct {
		title string
		m     map[string]int
	}{{"labels", p.Labels}, {"categories", p.Categories}} {
		if len(h.m) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, h.title)
		for _, kc := range model.Sorted(h.m) {
			ratio := 0.0
			if p.TotalRecords > 0 {
				ratio = float64(kc.Count) / float64(p.TotalRecords)
			}
			fmt.Fprintf(out, "  %-10s %s %d\n", kc.Key, theme.Bar(ratio, 20), kc.Count)
		}
	}
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return model.NoneKey
	}
	return *s
}
