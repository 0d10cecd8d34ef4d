package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallpick/pkg/auth"
	"wallpick/pkg/config"
	"wallpick/pkg/errors"
	"wallpick/pkg/logger"
	"wallpick/pkg/wallhaven"
	"wallpick/pkg/wallpaper"
)

// stubAPI simulates the search endpoint and the image CDN in one server
type stubAPI struct {
	server       *httptest.Server
	imageBytes   []byte
	results      int
	searchCalls  int32
	lastQuery    map[string]string
	imageName    string
}

func newStubAPI(t *testing.T, results int) *stubAPI {
	t.Helper()

	s := &stubAPI{
		imageBytes: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x10, 0x20, 0x30, 0x40},
		results:    results,
		imageName:  "img.jpg",
	}

	mux := http.NewServeMux()
	mux.HandleFunc(wallhaven.SearchEndpoint, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&s.searchCalls, 1)
		s.lastQuery = map[string]string{
			"sorting":    r.URL.Query().Get("sorting"),
			"categories": r.URL.Query().Get("categories"),
			"purity":     r.URL.Query().Get("purity"),
			"atleast":    r.URL.Query().Get("atleast"),
			"ratios":     r.URL.Query().Get("ratios"),
			"apikey":     r.URL.Query().Get("apikey"),
		}

		data := ""
		for i := 0; i < s.results; i++ {
			if i > 0 {
				data += ","
			}
			data += fmt.Sprintf(`{
				"id": "res%d",
				"url": "%s/w/res%d",
				"path": "%s/full/%s",
				"resolution": "1920x1080",
				"dimension_x": 1920,
				"dimension_y": 1080
			}`, i, s.server.URL, i, s.server.URL, s.imageName)
		}
		fmt.Fprintf(w, `{"data":[%s],"meta":{"current_page":1,"last_page":1,"total":%d}}`, data, s.results)
	})
	mux.HandleFunc("/full/", func(w http.ResponseWriter, r *http.Request) {
		w.Write(s.imageBytes)
	})

	s.server = httptest.NewServer(mux)
	t.Cleanup(s.server.Close)
	return s
}

func testConfig(t *testing.T, api *stubAPI) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Wallhaven.BaseURL = api.server.URL
	cfg.Search.AtLeast = "1920x1080"
	cfg.Search.Ratios = []string{"16x9"}
	cfg.Output.Directory = t.TempDir()
	require.NoError(t, cfg.Validate())
	return cfg
}

// staticKeys is a KeyResolver with a fixed answer
type staticKeys struct {
	key *auth.APIKey
	err error
}

func (s *staticKeys) Retrieve() (*auth.APIKey, error) {
	return s.key, s.err
}

type setterRecorder struct {
	paths []string
	err   error
}

func (s *setterRecorder) Set(path string) error {
	s.paths = append(s.paths, path)
	return s.err
}

func (s *setterRecorder) Name() string { return "recorder" }

func TestRunEndToEnd(t *testing.T) {
	api := newStubAPI(t, 1)
	cfg := testConfig(t, api)

	// A Cinnamon desktop applying the downloaded file
	runner := &commandRecorder{}
	setter, err := wallpaper.NewGSettingsSetter("cinnamon", runner.run, logger.NewTestLogger())
	require.NoError(t, err)

	application, err := New(cfg, logger.NewTestLogger(), WithSetter(setter))
	require.NoError(t, err)

	path, err := application.Run(false)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(application.storage.Dir(), "img.jpg"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, api.imageBytes, written, "file content must match the remote bytes exactly")

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		"gsettings", "set", "org.cinnamon.desktop.background", "picture-uri", "file://" + path,
	}, runner.calls[0])

	// Filter parameters reached the API unchanged
	assert.Equal(t, "random", api.lastQuery["sorting"])
	assert.Equal(t, "1920x1080", api.lastQuery["atleast"])
	assert.Equal(t, "16x9", api.lastQuery["ratios"])
	assert.Equal(t, "100", api.lastQuery["purity"])
}

type commandRecorder struct {
	calls [][]string
}

func (c *commandRecorder) run(name string, args ...string) error {
	c.calls = append(c.calls, append([]string{name}, args...))
	return nil
}

func TestRunEmptyResult(t *testing.T) {
	api := newStubAPI(t, 0)
	cfg := testConfig(t, api)

	setter := &setterRecorder{}
	application, err := New(cfg, logger.NewTestLogger(), WithSetter(setter))
	require.NoError(t, err)

	_, err = application.Run(false)

	require.Error(t, err)
	assert.True(t, errors.IsEmptyResult(err))
	assert.Empty(t, setter.paths)

	entries, readErr := os.ReadDir(cfg.Output.Directory)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no file may be written on an empty result")
}

func TestRunNSFWWithoutCredentials(t *testing.T) {
	api := newStubAPI(t, 1)
	cfg := testConfig(t, api)
	cfg.Search.NSFW = true

	setter := &setterRecorder{}
	application, err := New(cfg, logger.NewTestLogger(),
		WithSetter(setter),
		WithKeyResolver(&staticKeys{err: auth.ErrKeyNotFound}),
	)
	require.NoError(t, err)

	_, err = application.Run(false)

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Zero(t, atomic.LoadInt32(&api.searchCalls), "the guard must fire before any request")
	assert.Empty(t, setter.paths)
}

func TestRunNSFWWithStoredKey(t *testing.T) {
	api := newStubAPI(t, 1)
	cfg := testConfig(t, api)
	cfg.Search.NSFW = true

	setter := &setterRecorder{}
	application, err := New(cfg, logger.NewTestLogger(),
		WithSetter(setter),
		WithKeyResolver(&staticKeys{key: &auth.APIKey{Key: "stored-key"}}),
	)
	require.NoError(t, err)

	_, err = application.Run(false)
	require.NoError(t, err)

	assert.Equal(t, "stored-key", api.lastQuery["apikey"])
	assert.Equal(t, "111", api.lastQuery["purity"])
	assert.Len(t, setter.paths, 1)
}

func TestRunDryRunSkipsSetter(t *testing.T) {
	api := newStubAPI(t, 1)
	cfg := testConfig(t, api)

	setter := &setterRecorder{}
	application, err := New(cfg, logger.NewTestLogger(), WithSetter(setter))
	require.NoError(t, err)

	path, err := application.Run(true)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Empty(t, setter.paths, "dry run must not touch the desktop")
}

func TestRunSetterFailurePropagates(t *testing.T) {
	api := newStubAPI(t, 1)
	cfg := testConfig(t, api)

	setter := &setterRecorder{err: errors.New(errors.ErrorTypeUnsupportedPlatform, "no mechanism")}
	application, err := New(cfg, logger.NewTestLogger(), WithSetter(setter))
	require.NoError(t, err)

	_, err = application.Run(false)

	require.Error(t, err)
	assert.True(t, errors.IsUnsupportedPlatform(err))
}

func TestNewFailsOnUnwritableOutputDir(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	api := newStubAPI(t, 1)
	cfg := testConfig(t, api)

	parent := t.TempDir()
	require.NoError(t, os.Chmod(parent, 0555))
	defer os.Chmod(parent, 0755)
	cfg.Output.Directory = filepath.Join(parent, "sub")

	_, err := New(cfg, logger.NewTestLogger(), WithSetter(&setterRecorder{}))

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}
