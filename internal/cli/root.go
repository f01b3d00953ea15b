// Package cli implements the gnome-wallpaper command-line interface using Cobra.
// Every subcommand maps to one library operation, "lua" runs scripts against the Lua module.
package cli

import (
	"fmt"
	"github.com/MatthiasKunnen/gnome-wallpaper/internal/config"
	"github.com/MatthiasKunnen/gnome-wallpaper/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"io"
	"os"
)

var (
	configPath string
	logLevel   string
	logFile    string

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "gnome-wallpaper",
	Short: "Set the GNOME wallpaper and query the desktop session",
	Long: `gnome-wallpaper sets the GNOME desktop wallpaper, lists directories, sleeps,
reads random data from the kernel and reports whether the screen is locked.

The same operations are available to Lua scripts through the lua_gnome_wallpaper module,
see "gnome-wallpaper lua".`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}

	logger, logCloser, err = logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	logger.Debug().Str("command", cmd.Name()).Msg("starting")
	return nil
}

func teardown(*cobra.Command, []string) error {
	if logCloser == nil {
		return nil
	}
	return logCloser.Close()
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
