package commands

import (
	"fmt"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"desktopcleaner/internal/category"
	"desktopcleaner/internal/i18n"
	"desktopcleaner/internal/model"
	"desktopcleaner/internal/scan"
	"desktopcleaner/internal/ui"
	"desktopcleaner/internal/weekly"
)

type statsOptions struct {
	top     int
	width   int
	folders bool
}

func newStatsCmd(a *app) *cobra.Command {
	var o statsOptions
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cleanliness, file types, heaviest files and folder sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload := a.host.Scan()
			if payload.Error != nil {
				return errors.Errorf("scan %s: %s", a.host.Desktop(), *payload.Error)
			}
			entries, err := scan.ListDesktop(a.host.Desktop())
			if err != nil {
				return err
			}
			var folders *scan.FolderStats
			if o.folders {
				if folders, err = scan.Folders(a.host.Desktop()); err != nil {
					return err
				}
			}
			texts := i18n.For(a.currentSettings().Lang)
			printStats(cmd.OutOrStdout(), a.theme, texts, payload.Files, scan.Heaviest(entries, o.top), folders, o.width)
			return nil
		},
	}
	cmd.Flags().IntVarP(&o.top, "top", "n", 5, "number of heaviest files to show")
	cmd.Flags().IntVarP(&o.width, "width", "w", 24, "bar width")
	cmd.Flags().BoolVar(&o.folders, "folders", true, "also total the folders on the desktop")
	return cmd
}

func printStats(out io.Writer, theme ui.Theme, texts i18n.Texts, files []model.FileRecord, heaviest []scan.Entry, folders *scan.FolderStats, width int) {
	fmt.Fprintf(out, "%s: %d   %s: %s\n", texts.FilesOnDesktop, len(files), texts.TotalSize, ui.FormatSize(model.TotalSize(files)))
	fmt.Fprintf(out, "%s: %s\n", texts.CleanlinessScore, theme.Gauge(weekly.Percent(len(files)), width))

	fmt.Fprintln(out)
	for _, c := range category.Histogram(files) {
		ratio := 0.0
		if len(files) > 0 {
			ratio = float64(c.Files) / float64(len(files))
		}
		fmt.Fprintf(out, "%-14s %s %d\n", texts.Bucket(c.Bucket), theme.Bar(ratio, width), c.Files)
	}

	if len(heaviest) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "TOP FILES:")
		for _, e := range heaviest {
			fmt.Fprintf(out, "%s %8s  %s\n", sizeTag(theme, e.Size), ui.FormatSize(e.Size), e.Name)
		}
	}

	if folders == nil || len(folders.Names) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "FOLDERS (total: %s, %d files)\n", ui.FormatSize(folders.Total), folders.Files)
	for i, name := range folders.Names {
		size := folders.ByChild[name]
		ratio := 0.0
		if folders.Total > 0 {
			ratio = float64(size) / float64(folders.Total)
		}
		prefix := "|-"
		if i == len(folders.Names)-1 {
			prefix = "`-"
		}
		fmt.Fprintf(out, "%s %-20s %8s  %s\n", prefix, name, ui.FormatSize(size), theme.Bar(ratio, width))
	}
}

func sizeTag(theme ui.Theme, size int64) string {
	if size >= 1<<30 {
		return theme.Emoji("🔥")
	}
	return theme.Emoji("📄")
}
