package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desktopcleaner/internal/model"
	"desktopcleaner/internal/singleinstance"
	"desktopcleaner/internal/tray"
	"desktopcleaner/internal/ui"
	"desktopcleaner/internal/weekly"
)

const watchLockName = "desktopcleaner-watch"

func newWatchCmd(a *app) *cobra.Command {
	var (
		debounce time.Duration
		noTray   bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rescan the desktop whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lock := singleinstance.New(watchLockName)
			ok, err := lock.Acquire()
			if err != nil {
				return errors.Wrap(err, "instance guard")
			}
			if !ok {
				return errors.New("desktopcleaner watch is already running")
			}
			defer lock.Release()

			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.Watch.Debounce
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.watch(ctx, cmd.OutOrStdout(), debounce, !noTray)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before a rescan (default from config)")
	cmd.Flags().BoolVar(&noTray, "no-tray", false, "do not show the tray icon")
	return cmd
}

func (a *app) watch(ctx context.Context, out io.Writer, debounce time.Duration, withTray bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := a.host.Updates().Connect(func(payload string) {
		printUpdate(out, a.theme, payload)
	})
	defer a.host.Updates().Disconnect(sub)

	if withTray {
		t, err := tray.Start("DesktopCleaner", tray.Actions{
			Scan: a.host.ScanDesktop,
			Quit: cancel,
		})
		switch {
		case errors.Is(err, tray.ErrUnsupported):
			a.log.Debug("no tray icon on this platform")
		case err != nil:
			a.log.Warn("tray icon", zap.Error(err))
		default:
			defer t.Close()
		}
	}

	fmt.Fprintf(out, "watching %s\n", a.host.Desktop())
	fmt.Fprintln(out, "press Ctrl+C to stop")
	a.host.ScanDesktop()
	return a.host.Watch(ctx, debounce)
}

func printUpdate(out io.Writer, theme ui.Theme, payload string) {
	var p model.FilesPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		fmt.Fprintf(out, "%s unreadable scan result: %v\n", time.Now().Format("15:04:05"), err)
		return
	}
	stamp := time.Now().Format("15:04:05")
	if p.Error != nil {
		fmt.Fprintf(out, "%s scan failed: %s\n", stamp, *p.Error)
		return
	}
	fmt.Fprintf(out, "%s %d files, %s  %s\n",
		stamp, len(p.Files), ui.FormatSize(model.TotalSize(p.Files)),
		theme.Gauge(weekly.Percent(len(p.Files)), 20))
}
