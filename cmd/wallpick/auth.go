package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wallpick/pkg/auth"
	"wallpick/pkg/config"
	"wallpick/pkg/logger"
	"wallpick/pkg/wallhaven"
)

// authCmd groups the credential subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the wallhaven API key",
	Long: `Manage the stored wallhaven API key, needed for NSFW searches.

The key is stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - WALLPICK_API_KEY environment variable (read-only fallback)`,
}

// authLoginCmd fetches the API key with account credentials and stores it
var authLoginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in to wallhaven and store the API key",
	Long: `Log in to wallhaven with your account credentials, scrape the API key from
the account settings page and store it securely. The password is read from
the terminal and never persisted.`,
	Example: `  # Interactive login
  wallpick auth login

  # Login with username
  wallpick auth login myusername`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthLogin,
}

// authSetKeyCmd stores a key obtained elsewhere
var authSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store an API key directly",
	Long:  `Store an API key copied from https://wallhaven.cc/settings/account.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return err
		}
		if err := manager.Store(&auth.APIKey{Key: strings.TrimSpace(args[0])}); err != nil {
			return err
		}
		fmt.Println("API key stored")
		return nil
	},
}

// authStatusCmd shows whether a key is stored
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an API key is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return err
		}

		key, err := manager.Retrieve()
		if err != nil {
			fmt.Println("No API key stored")
			return nil
		}

		fmt.Println("API key:", redact(key.Key))
		if key.Username != "" {
			fmt.Println("Username:", key.Username)
		}
		if !key.LastModified.IsZero() {
			fmt.Println("Stored:", key.LastModified.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

// authLogoutCmd removes the stored key
var authLogoutCmd = &cobra.Command{
	Use:     "logout",
	Aliases: []string{"delete"},
	Short:   "Remove the stored API key",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return err
		}
		if err := manager.Delete(); err != nil {
			return err
		}
		fmt.Println("API key removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authSetKeyCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}
	logger.Initialize(&cfg.Logging)

	var username string
	if len(args) > 0 {
		username = strings.TrimSpace(args[0])
	}
	if username == "" {
		fmt.Print("wallhaven username: ")
		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(input)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	client := wallhaven.NewClient(
		cfg.Wallhaven.BaseURL,
		cfg.Download.SearchTimeout,
		cfg.Download.DownloadTimeout,
		logger.GetLogger(),
	)
	if cfg.Wallhaven.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.Wallhaven.UserAgent)
	}

	key, err := client.FetchAPIKey(username, string(password))
	if err != nil {
		return err
	}

	manager, err := auth.NewManager()
	if err != nil {
		return err
	}
	if err := manager.Store(&auth.APIKey{Key: key, Username: username}); err != nil {
		return err
	}

	fmt.Println("Logged in, API key stored for", username)
	return nil
}
