package wallhaven

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallpick/pkg/config"
)

func TestSearchURL(t *testing.T) {
	params := SearchParams{
		Categories: "111",
		Purity:     "100",
		AtLeast:    "1920x1080",
		Ratios:     []string{"16x9", "16x10"},
		Sorting:    SortingRandom,
		APIKey:     "secret",
		Page:       2,
	}

	raw := SearchURL("https://wallhaven.cc", params)
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, SearchEndpoint, parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "random", query.Get("sorting"))
	assert.Equal(t, "111", query.Get("categories"))
	assert.Equal(t, "100", query.Get("purity"))
	assert.Equal(t, "1920x1080", query.Get("atleast"))
	assert.Equal(t, "16x9,16x10", query.Get("ratios"))
	assert.Equal(t, "secret", query.Get("apikey"))
	assert.Equal(t, "2", query.Get("page"))
}

func TestSearchURLOmitsEmptyParams(t *testing.T) {
	params := SearchParams{
		Categories: "111",
		Purity:     "100",
		Sorting:    SortingRandom,
	}

	parsed, err := url.Parse(SearchURL("https://wallhaven.cc", params))
	require.NoError(t, err)

	query := parsed.Query()
	assert.False(t, query.Has("atleast"))
	assert.False(t, query.Has("resolutions"))
	assert.False(t, query.Has("ratios"))
	assert.False(t, query.Has("apikey"))
	assert.False(t, query.Has("page"), "page 1 is implicit")
	assert.False(t, query.Has("seed"))
}

func TestSearchURLAtLeastWinsOverResolutions(t *testing.T) {
	params := SearchParams{
		Categories:  "111",
		Purity:      "100",
		AtLeast:     "2560x1440",
		Resolutions: []string{"1920x1080", "2560x1440"},
	}

	parsed, err := url.Parse(SearchURL("https://wallhaven.cc", params))
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "2560x1440", query.Get("atleast"))
	assert.False(t, query.Has("resolutions"))
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Categories = "010"
	cfg.Search.NSFW = true
	cfg.Search.Ratios = []string{"16x9"}
	cfg.Wallhaven.APIKey = "key"

	params := ParamsFromConfig(cfg)

	assert.Equal(t, "010", params.Categories)
	assert.Equal(t, "111", params.Purity)
	assert.Equal(t, []string{"16x9"}, params.Ratios)
	assert.Equal(t, SortingRandom, params.Sorting)
	assert.Equal(t, "key", params.APIKey)
	assert.True(t, params.RequestsNSFW())
}

func TestParamsFromConfigSingleResolutionBecomesAtLeast(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Resolutions = []string{"1920x1080"}

	params := ParamsFromConfig(cfg)
	assert.Equal(t, "1920x1080", params.AtLeast)
	assert.Empty(t, params.Resolutions)

	cfg.Search.Resolutions = []string{"1920x1080", "2560x1440"}
	params = ParamsFromConfig(cfg)
	assert.Empty(t, params.AtLeast)
	assert.Equal(t, []string{"1920x1080", "2560x1440"}, params.Resolutions)
}

func TestWallpaperFilename(t *testing.T) {
	w := &Wallpaper{Path: "https://w.wallhaven.cc/full/x8/wallhaven-x8g3gd.jpg"}
	assert.Equal(t, "wallhaven-x8g3gd.jpg", w.Filename())
}

func TestWallpaperDimensions(t *testing.T) {
	w := &Wallpaper{DimensionX: 2560, DimensionY: 1440}
	assert.Equal(t, 2560, w.Width())
	assert.Equal(t, 1440, w.Height())

	w = &Wallpaper{Resolution: "1920x1080"}
	assert.Equal(t, 1920, w.Width())
	assert.Equal(t, 1080, w.Height())

	w = &Wallpaper{Resolution: "garbage"}
	assert.Equal(t, 0, w.Width())
	assert.Equal(t, 0, w.Height())
}
