// Package commands is the desktopcleaner command line.
package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/Laisky/errors/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desktopcleaner/internal/config"
	"desktopcleaner/internal/host"
	"desktopcleaner/internal/logging"
	"desktopcleaner/internal/settings"
	"desktopcleaner/internal/ui"
)

// Version is set at build time with -ldflags "-X desktopcleaner/internal/commands.Version=...".
var Version = "dev"

const settingsFile = "settings.json"

type rootFlags struct {
	configPath string
	desktop    string
	dataDir    string
	noColor    bool
	noEmoji    bool
	verbose    bool
}

// app carries everything a subcommand needs once the root has loaded config.
type app struct {
	flags rootFlags

	cfg      *config.Config
	log      *zap.Logger
	theme    ui.Theme
	dataDir  string
	settings *settings.Store
	autorun  *host.Autorun
	host     *host.Local

	// quiet keeps the log off the terminal while a full-screen UI runs
	quiet bool
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return 1
	}
	return 0
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "desktopcleaner",
		Short:         "Keep the desktop tidy: scan, label, score and watch it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default desktopcleaner.yaml in . or the data folder)")
	pf.StringVar(&a.flags.desktop, "desktop", "", "folder to treat as the desktop")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "folder for state, settings and logs")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable ANSI colors")
	pf.BoolVar(&a.flags.noEmoji, "no-emoji", false, "disable emoji in output")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "also log to stderr")

	root.AddCommand(
		newScanCmd(a),
		newStatsCmd(a),
		newWatchCmd(a),
		newTUICmd(a),
		newAutorunCmd(a),
		newLabelCmd(a),
		newCategoryCmd(a),
		newProfileCmd(a),
		newOrganizeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.flags.noColor {
		color.NoColor = true
	}
	a.theme = ui.Theme{NoColor: a.flags.noColor || color.NoColor, NoEmoji: a.flags.noEmoji}

	var searchDirs []string
	searchDirs = append(searchDirs, ".")
	if a.flags.dataDir != "" {
		searchDirs = append(searchDirs, a.flags.dataDir)
	}
	cfg, err := config.Load(a.flags.configPath, searchDirs...)
	if err != nil {
		return err
	}
	if a.flags.desktop != "" {
		cfg.DesktopDir = a.flags.desktop
	}
	if a.flags.dataDir != "" {
		cfg.DataDir = a.flags.dataDir
	}
	a.cfg = cfg

	a.dataDir, err = host.AppDir(cfg.DataDir)
	if err != nil {
		return err
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = filepath.Join(a.dataDir, logging.DefaultFile)
	}
	var console io.Writer
	if a.flags.verbose && !a.quiet {
		console = cmd.ErrOrStderr()
	}
	a.log, err = logging.New(cfg.Log, console)
	if err != nil {
		return errors.Wrap(err, "init logging")
	}

	a.settings = settings.NewStore(filepath.Join(a.dataDir, settingsFile))
	opts := []host.Option{
		host.WithLogger(a.log.Named("host")),
		host.WithIgnore(a.ignoreList),
	}
	if ar, err := host.NewAutorun("watch"); err != nil {
		a.log.Warn("autorun unavailable", zap.Error(err))
	} else {
		a.autorun = ar
		opts = append(opts, host.WithAutorun(ar))
	}
	desktop := host.DesktopDir(cfg.DesktopDir)
	a.host = host.New(desktop, host.NewStateFile(host.StatePath(a.dataDir)), opts...)

	a.log.Debug("started",
		zap.String("command", cmd.Name()),
		zap.String("desktop", desktop),
		zap.String("data_dir", a.dataDir))
	return nil
}

// currentSettings re-reads the settings file so edits made by the TUI apply.
func (a *app) currentSettings() settings.Settings {
	return a.settings.Load().Apply(settings.Defaults())
}

func (a *app) ignoreList() []string {
	return a.currentSettings().IgnoreList
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}
