package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"desktopcleaner/internal/model"
)

func newLabelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "label <file> <" + labelChoices() + ">",
		Short: "Set or clear the user label of a desktop file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolve(args[0])
			if err := a.host.LabelFile(path, &args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: label %s\n", filepath.Base(path), args[1])
			return nil
		},
	}
}

func newCategoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "category <file> <" + categoryChoices() + ">",
		Short: "Set or clear the user category of a desktop file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.resolve(args[0])
			if err := a.host.SetCategory(path, &args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: category %s\n", filepath.Base(path), args[1])
			return nil
		},
	}
}

// resolve reads a bare file name as relative to the desktop.
func (a *app) resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(a.host.Desktop(), name)
}

func labelChoices() string {
	out := make([]string, 0, len(model.Labels)+1)
	for _, l := range model.Labels {
		out = append(out, string(l))
	}
	return strings.Join(append(out, "none"), "|")
}

func categoryChoices() string {
	out := make([]string, 0, len(model.Categories)+1)
	for _, c := range model.Categories {
		out = append(out, string(c))
	}
	return strings.Join(append(out, "none"), "|")
}
