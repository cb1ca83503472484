package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/config"
	"github.com/bkwi/beacon/internal/daemon"
	"github.com/bkwi/beacon/internal/engine"
	"github.com/bkwi/beacon/internal/provider"
	"github.com/bkwi/beacon/internal/router"
	"github.com/bkwi/beacon/internal/systemprofile"
	"github.com/bkwi/beacon/internal/theme"
	"github.com/bkwi/beacon/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "beacon:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		daemonMode bool
		setupMode  bool
	)

	cmd := &cobra.Command{
		Use:           "beacon",
		Short:         "Interactive command launcher",
		Long:          "beacon is a keyboard-driven launcher: apps, windows, files,\nclipboard history, quick math and more behind one search box.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			if _, err := appdirs.EnsureConfigDir(); err != nil {
				return err
			}
			cfg, cfgPath, err := config.LoadOrCreate()
			if err != nil {
				return err
			}

			switch {
			case setupMode:
				return ui.RunSetup(cfg, cfgPath)
			case daemonMode:
				return daemon.Run(cmd.Context(), cfg, logger)
			default:
				return runLauncher(cfg, logger)
			}
		},
	}

	cmd.Flags().BoolVarP(&daemonMode, "daemon", "d", false, "run the clipboard history daemon")
	cmd.Flags().BoolVar(&setupMode, "setup", false, "run the configuration wizard")
	cmd.AddCommand(newConfigCmd())
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write configuration values",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := config.LoadOrCreate()
				if err != nil {
					return err
				}
				value, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				cfg, path, err := config.LoadOrCreate()
				if err != nil {
					return err
				}
				if err := cfg.Set(args[0], args[1]); err != nil {
					return err
				}
				return config.Save(path, cfg)
			},
		},
	)
	return cmd
}

func runLauncher(cfg config.Config, logger *slog.Logger) error {
	if _, err := appdirs.EnsureScriptsDir(); err != nil {
		logger.Warn("could not create scripts dir", "error", err)
	}

	if profile, err := systemprofile.Ensure(); err == nil {
		if missing := profile.MissingTools(); len(missing) > 0 {
			logger.Debug("some providers are limited", "missing", missing)
		}
	}

	registry := provider.NewRegistry(provider.Deps{Config: cfg}, provider.DefaultRegistrations())
	for _, issue := range registry.Issues() {
		logger.Warn("provider disabled", "mode", issue.Mode, "error", issue.Err)
	}

	eng := engine.New(registry, router.New(registry.PrefixTable()), cfg.MaxResults, logger)

	themePath, err := appdirs.ThemeFilePath()
	if err != nil {
		return err
	}
	styles := theme.Load(themePath).Styles()

	result, ok, err := ui.Launch(cfg.UI.Backend, eng, styles, registry.Issues())
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return ui.NewExecutor(registry, cfg).Execute(result)
}
