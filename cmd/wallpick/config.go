package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wallpick/pkg/config"
)

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	Long: `Inspect and manage the wallpick configuration.

The config file is YAML and is searched for at .wallpick.yaml, ~/.wallpick.yaml
and ~/.config/wallpick/config.yaml unless --config points elsewhere.`,
}

// configInitCmd writes a default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Example: `  # Create ~/.wallpick.yaml with the defaults
  wallpick config init

  # Create at a specific location
  wallpick config init --config ./wallpick.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("cannot locate home directory: %w", err)
			}
			path = filepath.Join(home, ".wallpick.yaml")
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}

		fmt.Println("Configuration written to", path)
		return nil
	},
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging all sources: defaults, the config
file, environment variables and flags. Secrets are redacted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, nil)
		if err != nil {
			return err
		}

		if cfg.Wallhaven.APIKey != "" {
			cfg.Wallhaven.APIKey = redact(cfg.Wallhaven.APIKey)
		}
		if cfg.Wallhaven.Password != "" {
			cfg.Wallhaven.Password = "********"
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

// configPathCmd prints the config search locations
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file search locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			fmt.Println(configFile)
			return nil
		}
		for _, loc := range config.SearchLocations() {
			marker := ""
			if _, err := os.Stat(loc); err == nil {
				marker = "  (found)"
			}
			fmt.Println(loc + marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

// redact keeps the first and last two characters of a secret
func redact(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:2] + "..." + s[len(s)-2:]
}
