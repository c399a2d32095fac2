package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desktopcleaner/internal/bridge"
	"desktopcleaner/internal/dashboard"
	"desktopcleaner/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive cleanup dashboard",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.quiet = true
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.dashboard(ctx, watch)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "rescan when the desktop changes")
	return cmd
}

func (a *app) dashboard(ctx context.Context, watch bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := dashboard.NewStore(
		dashboard.WithLogger(a.log.Named("dashboard")),
		dashboard.WithSettings(a.settings),
		dashboard.WithProgressInterval(a.cfg.Scan.ProgressInterval),
	)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = store.Run(ctx)
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	bh := a.host.Bridge()
	go func() {
		probe := func() (*bridge.Host, bool) { return bh, true }
		if err := store.Connect(ctx, probe, nil, a.cfg.Bridge.RetryInterval, a.cfg.Bridge.MaxAttempts); err != nil {
			a.log.Warn("dashboard has no host", zap.Error(err))
		}
	}()
	if watch {
		go func() {
			if err := a.host.Watch(ctx, a.cfg.Watch.Debounce); err != nil {
				a.log.Warn("desktop watch stopped", zap.Error(err))
			}
		}()
	}

	return tui.Run(ctx, store)
}
