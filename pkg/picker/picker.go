// Package picker selects one wallpaper pseudo-randomly from the search
// results. Sampling spans a configurable number of result pages; the page
// count is an explicit setting rather than an implicit first-page-only rule.
package picker

import (
	"math/rand"
	"time"

	"wallpick/pkg/errors"
	"wallpick/pkg/logger"
	"wallpick/pkg/wallhaven"
)

// Searcher is the slice of the wallhaven client the picker needs
type Searcher interface {
	Search(params wallhaven.SearchParams) (*wallhaven.SearchResponse, error)
}

// Picker accumulates candidates from the API and picks one
type Picker struct {
	searcher Searcher
	rng      *rand.Rand
	logger   logger.Logger
}

// New creates a Picker with a time-seeded random source
func New(searcher Searcher, log logger.Logger) *Picker {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Picker{
		searcher: searcher,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   log,
	}
}

// NewWithSeed creates a Picker with a fixed seed, for deterministic tests
func NewWithSeed(searcher Searcher, seed int64, log logger.Logger) *Picker {
	p := New(searcher, log)
	p.rng = rand.New(rand.NewSource(seed))
	return p
}

// Pick fetches up to pages result pages and returns one random candidate.
// The server-side seed from the first response is reused for later pages so
// pagination stays stable while sampling. Zero candidates across all fetched
// pages is an empty result error.
func (p *Picker) Pick(params wallhaven.SearchParams, pages int) (*wallhaven.Wallpaper, error) {
	if pages <= 0 {
		pages = 1
	}

	var candidates []wallhaven.Wallpaper

	for page := 1; page <= pages; page++ {
		params.Page = page

		resp, err := p.searcher.Search(params)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, resp.Data...)

		p.logger.DebugWithFields("collected search page", map[string]interface{}{
			"page":       page,
			"results":    len(resp.Data),
			"candidates": len(candidates),
		})

		if resp.Meta.Seed != "" {
			params.Seed = resp.Meta.Seed
		}

		if resp.Meta.LastPage > 0 && page >= resp.Meta.LastPage {
			break
		}
	}

	if len(candidates) == 0 {
		return nil, errors.New(errors.ErrorTypeEmptyResult,
			"the configured filters matched no wallpapers")
	}

	chosen := candidates[p.rng.Intn(len(candidates))]

	p.logger.InfoWithFields("picked wallpaper", map[string]interface{}{
		"id":         chosen.ID,
		"url":        chosen.URL,
		"resolution": chosen.Resolution,
		"candidates": len(candidates),
	})

	return &chosen, nil
}
