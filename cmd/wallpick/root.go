package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version information, set at build time
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd runs the full pipeline when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "wallpick",
	Short: "Fetch a random wallpaper from wallhaven.cc and set it as the desktop background",
	Long: `wallpick queries the wallhaven.cc search API with your configured filters,
picks one random result, downloads it and sets it as the desktop wallpaper.

Filters (categories, purity, minimum resolution, aspect ratios) come from a
YAML config file, environment variables or command line flags. NSFW results
require a wallhaven API key, stored with 'wallpick auth'.

Supported desktops: GNOME, Cinnamon and MATE on Linux, the Finder on macOS,
and Windows. KDE is not supported.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWallpaper,
}

// Execute runs the root command. Any failure exits with a non-zero status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.wallpick.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`wallpick {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
