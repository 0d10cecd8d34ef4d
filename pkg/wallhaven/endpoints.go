package wallhaven

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"wallpick/pkg/config"
)

const (
	// DefaultBaseURL is the wallhaven host
	DefaultBaseURL = "https://wallhaven.cc"

	// SearchEndpoint is the image search API endpoint
	SearchEndpoint = "/api/v1/search"

	// LoginPageEndpoint serves the login form (carries the CSRF token)
	LoginPageEndpoint = "/login"

	// LoginEndpoint accepts the login form post
	LoginEndpoint = "/auth/login"

	// AccountSettingsEndpoint exposes the account API key
	AccountSettingsEndpoint = "/settings/account"

	// SortingRandom asks the API to shuffle results server-side
	SortingRandom = "random"
)

// SearchParams holds the query parameters for one search request
type SearchParams struct {
	Categories  string
	Purity      string
	AtLeast     string
	Resolutions []string
	Ratios      []string
	Sorting     string
	Seed        string
	APIKey      string
	Page        int
}

// ParamsFromConfig builds search parameters from the loaded configuration.
// A single exact resolution is promoted to an atleast bound, matching how
// the tool has historically treated one-element resolution lists.
func ParamsFromConfig(cfg *config.Config) SearchParams {
	p := SearchParams{
		Categories: cfg.Search.Categories,
		Purity:     cfg.EffectivePurity(),
		AtLeast:    cfg.Search.AtLeast,
		Ratios:     cfg.Search.Ratios,
		Sorting:    SortingRandom,
		APIKey:     cfg.Wallhaven.APIKey,
	}

	if p.AtLeast == "" {
		if len(cfg.Search.Resolutions) == 1 {
			p.AtLeast = cfg.Search.Resolutions[0]
		} else {
			p.Resolutions = cfg.Search.Resolutions
		}
	} else {
		p.Resolutions = nil
	}

	return p
}

// RequestsNSFW reports whether the purity bitstring includes NSFW content
func (p SearchParams) RequestsNSFW() bool {
	return len(p.Purity) == 3 && p.Purity[2] == '1'
}

// SearchURL constructs the search request URL for the given page
func SearchURL(baseURL string, p SearchParams) string {
	values := url.Values{}
	values.Set("sorting", p.Sorting)
	values.Set("categories", p.Categories)
	values.Set("purity", p.Purity)

	if p.AtLeast != "" {
		values.Set("atleast", p.AtLeast)
	} else if len(p.Resolutions) > 0 {
		values.Set("resolutions", strings.Join(p.Resolutions, ","))
	}

	if len(p.Ratios) > 0 {
		values.Set("ratios", strings.Join(p.Ratios, ","))
	}

	if p.Seed != "" {
		values.Set("seed", p.Seed)
	}

	if p.Page > 1 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.APIKey != "" {
		values.Set("apikey", p.APIKey)
	}

	return fmt.Sprintf("%s%s?%s", baseURL, SearchEndpoint, values.Encode())
}
