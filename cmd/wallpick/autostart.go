package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallpick/pkg/autostart"
)

// autostartCmd groups the login-time startup subcommands
var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Run wallpick automatically at login",
	Long: `Install or remove a login-time startup entry so a fresh wallpaper is set
at the start of every desktop session.

Linux uses an XDG autostart desktop entry, macOS a launchd agent, Windows a
script in the Startup folder.`,
}

var autostartEnableCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"enable"},
	Short:   "Install the login-time startup entry",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostart.CurrentEntry()
		if err != nil {
			return err
		}
		path, err := autostart.Install(entry)
		if err != nil {
			return err
		}
		fmt.Println("Autostart entry installed at", path)
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"disable"},
	Short:   "Remove the login-time startup entry",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostart.CurrentEntry()
		if err != nil {
			return err
		}
		if err := autostart.Remove(entry); err != nil {
			return err
		}
		fmt.Println("Autostart entry removed")
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the startup entry is installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := autostart.CurrentEntry()
		if err != nil {
			return err
		}
		if installed, path := autostart.Installed(entry); installed {
			fmt.Println("Autostart enabled:", path)
		} else {
			fmt.Println("Autostart disabled")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(autostartCmd)
	autostartCmd.AddCommand(autostartEnableCmd)
	autostartCmd.AddCommand(autostartDisableCmd)
	autostartCmd.AddCommand(autostartStatusCmd)
}
