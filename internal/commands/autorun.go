package commands

import (
	"fmt"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"desktopcleaner/internal/bridge"
)

func newAutorunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "autorun on|off|status",
		Short:     "Start the desktop watcher at login",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.autorun == nil {
				return errors.New("autorun is not available")
			}
			out := cmd.OutOrStdout()
			switch args[0] {
			case "status":
				state := "off"
				if a.autorun.Enabled() {
					state = "on"
				}
				fmt.Fprintf(out, "autorun: %s\n", state)
				return nil
			default:
				status := a.autorun.Set(args[0] == "on")
				if bridge.IsErrorStatus(status) {
					return errors.New(status)
				}
				fmt.Fprintln(out, status)
				return nil
			}
		},
	}
}
