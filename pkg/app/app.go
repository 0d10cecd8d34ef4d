// Package app wires the pipeline together: load configuration, search the
// API, pick one result, download it, set it as the wallpaper. The flow is
// strictly linear with no retries; the first failure aborts the run and the
// previous wallpaper stays in place.
package app

import (
	"wallpick/pkg/auth"
	"wallpick/pkg/config"
	"wallpick/pkg/errors"
	"wallpick/pkg/logger"
	"wallpick/pkg/picker"
	"wallpick/pkg/storage"
	"wallpick/pkg/wallhaven"
	"wallpick/pkg/wallpaper"
)

// KeyResolver yields a stored API key; auth.Manager is the production one
type KeyResolver interface {
	Retrieve() (*auth.APIKey, error)
}

// App holds the wired pipeline components
type App struct {
	config  *config.Config
	client  *wallhaven.Client
	picker  *picker.Picker
	storage *storage.Manager
	setter  wallpaper.Setter
	keys    KeyResolver
	logger  logger.Logger
}

// Option adjusts the App wiring, mainly for tests
type Option func(*App)

// WithSetter substitutes the wallpaper setter
func WithSetter(s wallpaper.Setter) Option {
	return func(a *App) { a.setter = s }
}

// WithKeyResolver substitutes the stored-key lookup
func WithKeyResolver(r KeyResolver) Option {
	return func(a *App) { a.keys = r }
}

// WithPicker substitutes the picker
func WithPicker(p *picker.Picker) Option {
	return func(a *App) { a.picker = p }
}

// New creates an App from the loaded configuration. The platform wallpaper
// mechanism is resolved here, so an unsupported desktop fails before any
// network traffic.
func New(cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	client := wallhaven.NewClient(
		cfg.Wallhaven.BaseURL,
		cfg.Download.SearchTimeout,
		cfg.Download.DownloadTimeout,
		log,
	)
	if cfg.Wallhaven.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.Wallhaven.UserAgent)
	}

	storageManager, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  cfg,
		client:  client,
		picker:  picker.New(client, log),
		storage: storageManager,
		logger:  log,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.setter == nil {
		setter, err := wallpaper.New(log)
		if err != nil {
			return nil, err
		}
		a.setter = setter
	}

	return a, nil
}

// Client exposes the wallhaven client, for the auth commands
func (a *App) Client() *wallhaven.Client {
	return a.client
}

// Run executes the pipeline and returns the path of the downloaded file.
// With dryRun the wallpaper is downloaded but not applied.
func (a *App) Run(dryRun bool) (string, error) {
	params := wallhaven.ParamsFromConfig(a.config)

	if params.RequestsNSFW() && params.APIKey == "" {
		key, err := a.resolveAPIKey()
		if err != nil {
			return "", err
		}
		params.APIKey = key
	}

	chosen, err := a.picker.Pick(params, a.config.Search.Pages)
	if err != nil {
		return "", err
	}

	body, err := a.client.Download(chosen)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path, err := a.storage.Save(body, chosen.Filename())
	if err != nil {
		return "", err
	}

	a.logger.InfoWithFields("wallpaper downloaded", map[string]interface{}{
		"path": path,
	})

	if dryRun {
		a.logger.Info("dry run, leaving the current wallpaper in place")
		return path, nil
	}

	if err := a.setter.Set(path); err != nil {
		return "", err
	}

	a.logger.InfoWithFields("wallpaper applied", map[string]interface{}{
		"mechanism": a.setter.Name(),
		"path":      path,
	})

	return path, nil
}

// resolveAPIKey finds a usable API key for NSFW searches: the credential
// store first, then a login with the configured username and password.
// Nothing here widens or narrows the filter; no key means the run fails.
func (a *App) resolveAPIKey() (string, error) {
	if a.keys == nil {
		if manager, err := auth.NewManager(); err == nil {
			a.keys = manager
		}
	}

	if a.keys != nil {
		if stored, err := a.keys.Retrieve(); err == nil && stored.Key != "" {
			a.logger.Debug("using stored API key")
			return stored.Key, nil
		}
	}

	if a.config.Wallhaven.Username != "" && a.config.Wallhaven.Password != "" {
		a.logger.InfoWithFields("fetching API key via login", map[string]interface{}{
			"username": a.config.Wallhaven.Username,
		})
		return a.client.FetchAPIKey(a.config.Wallhaven.Username, a.config.Wallhaven.Password)
	}

	return "", errors.New(errors.ErrorTypeConfiguration,
		"NSFW content requested but no API key or login credentials are configured")
}
