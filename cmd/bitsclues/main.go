package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"bitsclues/internal/app"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags    app.Config
		settings string
	)

	cmd := &cobra.Command{
		Use:           "bitsclues",
		Short:         "A four-stage terminal puzzle: passcode, riddle, encrypted files, quiz",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.DefaultConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if settings == "" {
				settings = filepath.Join(cfg.DataDir, "settings.yaml")
			}
			if err := cfg.ApplySettingsFile(settings); err != nil {
				return err
			}
			if err := cfg.ApplyEnv(); err != nil {
				return err
			}
			overrideChanged(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&flags.ConfigPath, "config", "", "path to the experience document (config/config.json)")
	cmd.Flags().StringVar(&flags.DataDir, "data-dir", "", "directory for the saved-progress database")
	cmd.Flags().StringVar(&flags.ExportDir, "export-dir", "", "directory where downloaded results are written")
	cmd.Flags().StringVar(&flags.LogPath, "log", "", "append structured logs to this file")
	cmd.Flags().StringVar(&flags.TeamName, "team", "", "team name attached to quiz submissions")
	cmd.Flags().BoolVar(&flags.ASCIIOnly, "ascii", false, "draw with plain ASCII borders and markers")
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "enable debug logging")
	cmd.Flags().Int64Var(&flags.Seed, "seed", 0, "fixed shuffle seed (0 means random)")
	cmd.Flags().StringVar(&settings, "settings", "", "path to the YAML settings file")

	return cmd
}

// overrideChanged copies only flags the user actually set, so flags
// stay the highest-priority layer without clobbering settings or env.
func overrideChanged(cmd *cobra.Command, cfg *app.Config, flags app.Config) {
	if cmd.Flags().Changed("config") {
		cfg.ConfigPath = flags.ConfigPath
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = flags.DataDir
	}
	if cmd.Flags().Changed("export-dir") {
		cfg.ExportDir = flags.ExportDir
	}
	if cmd.Flags().Changed("log") {
		cfg.LogPath = flags.LogPath
	}
	if cmd.Flags().Changed("team") {
		cfg.TeamName = flags.TeamName
	}
	if cmd.Flags().Changed("ascii") {
		cfg.ASCIIOnly = flags.ASCIIOnly
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = flags.Debug
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flags.Seed
	}
}
