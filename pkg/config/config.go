package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"wallpick/pkg/errors"
)

// Config holds all configuration options for the wallpaper picker
type Config struct {
	// Wallhaven account and endpoint settings
	Wallhaven WallhavenConfig `yaml:"wallhaven" json:"wallhaven"`

	// Search filter settings
	Search SearchConfig `yaml:"search" json:"search"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// WallhavenConfig holds wallhaven-specific configuration
type WallhavenConfig struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	Username  string `yaml:"username" json:"username"`
	Password  string `yaml:"password" json:"password"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// SearchConfig holds the image filter configuration.
//
// Categories and Purity use the wallhaven three-character bitstrings
// (general/anime/people and sfw/sketchy/nsfw respectively). When Purity is
// empty it is derived from the NSFW flag.
type SearchConfig struct {
	Categories  string   `yaml:"categories" json:"categories"`
	Purity      string   `yaml:"purity" json:"purity"`
	NSFW        bool     `yaml:"nsfw" json:"nsfw"`
	AtLeast     string   `yaml:"atleast" json:"atleast"`
	Resolutions []string `yaml:"resolutions" json:"resolutions"`
	Ratios      []string `yaml:"ratios" json:"ratios"`
	Pages       int      `yaml:"pages" json:"pages"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	SearchTimeout   time.Duration `yaml:"search_timeout" json:"search_timeout"`
	DownloadTimeout time.Duration `yaml:"download_timeout" json:"download_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

var resolutionPattern = regexp.MustCompile(`^\d+x\d+$`)

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Wallhaven: WallhavenConfig{
			BaseURL:   "https://wallhaven.cc",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:76.0) Gecko/20100101 Firefox/76.0",
		},
		Search: SearchConfig{
			Categories: "111",
			Purity:     "",
			NSFW:       false,
			AtLeast:    "",
			Ratios:     nil,
			Pages:      1,
		},
		Output: OutputConfig{
			Directory: "./randomwallpapers",
		},
		Download: DownloadConfig{
			SearchTimeout:   10 * time.Second,
			DownloadTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// EffectivePurity returns the purity bitstring to send to the API. An
// explicit purity setting wins over the NSFW flag.
func (c *Config) EffectivePurity() string {
	if c.Search.Purity != "" {
		return c.Search.Purity
	}
	if c.Search.NSFW {
		return "111"
	}
	return "100"
}

// RequestsNSFW reports whether the effective purity includes NSFW content
func (c *Config) RequestsNSFW() bool {
	p := c.EffectivePurity()
	return len(p) == 3 && p[2] == '1'
}

// HasCredentials reports whether an API key or a login credential pair is
// configured
func (c *Config) HasCredentials() bool {
	if c.Wallhaven.APIKey != "" {
		return true
	}
	return c.Wallhaven.Username != "" && c.Wallhaven.Password != ""
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if apiKey := os.Getenv("WALLPICK_API_KEY"); apiKey != "" {
		c.Wallhaven.APIKey = apiKey
	}
	if username := os.Getenv("WALLPICK_USERNAME"); username != "" {
		c.Wallhaven.Username = username
	}
	if password := os.Getenv("WALLPICK_PASSWORD"); password != "" {
		c.Wallhaven.Password = password
	}
	if baseURL := os.Getenv("WALLPICK_BASE_URL"); baseURL != "" {
		c.Wallhaven.BaseURL = baseURL
	}

	if categories := os.Getenv("WALLPICK_CATEGORIES"); categories != "" {
		c.Search.Categories = categories
	}
	if purity := os.Getenv("WALLPICK_PURITY"); purity != "" {
		c.Search.Purity = purity
	}
	if nsfw := os.Getenv("WALLPICK_NSFW"); nsfw != "" {
		c.Search.NSFW = strings.ToLower(nsfw) == "true"
	}
	if atLeast := os.Getenv("WALLPICK_ATLEAST"); atLeast != "" {
		c.Search.AtLeast = atLeast
	}
	if pages := os.Getenv("WALLPICK_PAGES"); pages != "" {
		var val int
		fmt.Sscanf(pages, "%d", &val)
		if val > 0 {
			c.Search.Pages = val
		}
	}

	if outputDir := os.Getenv("WALLPICK_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}

	if logLevel := os.Getenv("WALLPICK_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file.
//
// An explicitly requested file that is missing or malformed is a
// configuration error. An empty path falls back to the standard search
// locations and silently keeps the defaults when none exists.
func (c *Config) LoadFromFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = c.findConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeConfiguration, err,
			fmt.Sprintf("failed to read config file %s", path))
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrap(errors.ErrorTypeConfiguration, err,
			fmt.Sprintf("failed to parse config file %s", path))
	}

	return nil
}

// SearchLocations lists the standard config file locations, in lookup order
func SearchLocations() []string {
	return []string{
		".wallpick.yaml",
		".wallpick.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "wallpick", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "wallpick", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".wallpick.yaml"),
		filepath.Join(os.Getenv("HOME"), ".wallpick.yml"),
	}
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	for _, loc := range SearchLocations() {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var problems []string

	if !isBitstring(c.Search.Categories) {
		problems = append(problems, fmt.Sprintf("categories must be a three-character bitstring like 111, got %q", c.Search.Categories))
	}
	if c.Search.Purity != "" && !isBitstring(c.Search.Purity) {
		problems = append(problems, fmt.Sprintf("purity must be a three-character bitstring like 100, got %q", c.Search.Purity))
	}
	if c.Search.AtLeast != "" && !resolutionPattern.MatchString(c.Search.AtLeast) {
		problems = append(problems, fmt.Sprintf("atleast must look like 1920x1080, got %q", c.Search.AtLeast))
	}
	for _, res := range c.Search.Resolutions {
		if !resolutionPattern.MatchString(res) {
			problems = append(problems, fmt.Sprintf("resolution must look like 1920x1080, got %q", res))
		}
	}
	for _, ratio := range c.Search.Ratios {
		if !resolutionPattern.MatchString(ratio) {
			problems = append(problems, fmt.Sprintf("ratio must look like 16x9, got %q", ratio))
		}
	}
	if c.Search.Pages <= 0 {
		problems = append(problems, "pages must be positive")
	}

	if c.Output.Directory == "" {
		problems = append(problems, "output directory is required")
	}

	if c.Download.SearchTimeout <= 0 {
		problems = append(problems, "search timeout must be positive")
	}
	if c.Download.DownloadTimeout <= 0 {
		problems = append(problems, "download timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Logging.Level))
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrorTypeConfiguration, strings.Join(problems, "; "))
	}

	return nil
}

// isBitstring reports whether s is a three-character string of 0s and 1s
// with at least one 1, the format wallhaven uses for categories and purity
func isBitstring(s string) bool {
	if len(s) != 3 {
		return false
	}
	ones := 0
	for i := 0; i < 3; i++ {
		switch s[i] {
		case '1':
			ones++
		case '0':
		default:
			return false
		}
	}
	return ones > 0
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if apiKey, ok := flags["api-key"].(string); ok && apiKey != "" {
		c.Wallhaven.APIKey = apiKey
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if categories, ok := flags["categories"].(string); ok && categories != "" {
		c.Search.Categories = categories
	}
	if atLeast, ok := flags["atleast"].(string); ok && atLeast != "" {
		c.Search.AtLeast = atLeast
	}
	if ratios, ok := flags["ratios"].([]string); ok && len(ratios) > 0 {
		c.Search.Ratios = ratios
	}
	if nsfw, ok := flags["nsfw"].(bool); ok && nsfw {
		c.Search.NSFW = true
	}
	if pages, ok := flags["pages"].(int); ok && pages > 0 {
		c.Search.Pages = pages
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".wallpick.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, err
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, err
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
