package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallpick/pkg/app"
	"wallpick/pkg/config"
	"wallpick/pkg/logger"
)

var (
	// Run command flags
	outputDir  string
	categories string
	atLeast    string
	ratios     []string
	nsfw       bool
	pages      int
	apiKey     string
	dryRun     bool
)

// runCmd is an explicit alias for the default behavior
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download a random wallpaper and apply it",
	Long: `Query the search API with the configured filters, pick one random result,
download it into the output directory and set it as the desktop wallpaper.

On any failure the previous wallpaper is left in place and the command exits
with a non-zero status.`,
	Example: `  # Use the configured filters
  wallpick run

  # Landscape wallpapers of at least 2560x1440
  wallpick run --ratios 16x9,21x9 --atleast 2560x1440

  # Include NSFW results (requires a stored API key or login credentials)
  wallpick run --nsfw

  # Download only, keep the current wallpaper
  wallpick run --dry-run`,
	Args: cobra.NoArgs,
	RunE: runWallpaper,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// The same flags work with and without the run subcommand
	for _, cmd := range []*cobra.Command{runCmd, rootCmd} {
		cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for downloads")
		cmd.Flags().StringVar(&categories, "categories", "", "category bitstring general/anime/people (e.g. 101)")
		cmd.Flags().StringVar(&atLeast, "atleast", "", "minimum resolution (e.g. 1920x1080)")
		cmd.Flags().StringSliceVar(&ratios, "ratios", nil, "aspect ratios (e.g. 16x9,16x10)")
		cmd.Flags().BoolVar(&nsfw, "nsfw", false, "include NSFW results")
		cmd.Flags().IntVar(&pages, "pages", 0, "number of result pages to sample from")
		cmd.Flags().StringVar(&apiKey, "api-key", "", "wallhaven API key")
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "download only, do not change the wallpaper")
	}
}

func runWallpaper(cmd *cobra.Command, args []string) error {
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if categories != "" {
		flags["categories"] = categories
	}
	if atLeast != "" {
		flags["atleast"] = atLeast
	}
	if len(ratios) > 0 {
		flags["ratios"] = ratios
	}
	if nsfw {
		flags["nsfw"] = true
	}
	if pages > 0 {
		flags["pages"] = pages
	}
	if apiKey != "" {
		flags["api-key"] = apiKey
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return err
	}

	logger.Initialize(&cfg.Logging)
	log := logger.GetLogger()
	log.WithField("version", version).Info("wallpick starting")

	application, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Error("initialization failed")
		return err
	}

	path, err := application.Run(dryRun)
	if err != nil {
		log.WithError(err).Error("run failed")
		return err
	}

	fmt.Println(path)
	return nil
}
