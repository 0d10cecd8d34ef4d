package wallhaven

import (
	"encoding/json"
	"path"
	"strconv"
	"strings"
)

// SearchResponse is the wallhaven /api/v1/search response envelope
type SearchResponse struct {
	Data  []Wallpaper `json:"data"`
	Meta  Meta        `json:"meta"`
	Error string      `json:"error,omitempty"`
}

// Wallpaper is one search result record. Path is the direct image URL,
// URL the browsable wallpaper page.
type Wallpaper struct {
	ID         string  `json:"id"`
	URL        string  `json:"url"`
	ShortURL   string  `json:"short_url"`
	Views      int     `json:"views"`
	Favorites  int     `json:"favorites"`
	Purity     string  `json:"purity"`
	Category   string  `json:"category"`
	DimensionX int     `json:"dimension_x"`
	DimensionY int     `json:"dimension_y"`
	Resolution string  `json:"resolution"`
	Ratio      string  `json:"ratio"`
	FileSize   int64   `json:"file_size"`
	FileType   string  `json:"file_type"`
	CreatedAt  string  `json:"created_at"`
	Colors     []string `json:"colors"`
	Path       string  `json:"path"`
	Thumbs     Thumbs  `json:"thumbs"`
}

// Thumbs holds the thumbnail variants of a wallpaper
type Thumbs struct {
	Large    string `json:"large"`
	Original string `json:"original"`
	Small    string `json:"small"`
}

// Meta is the paging block of a search response. PerPage is a json.Number
// because the API has returned it both as a number and as a string.
type Meta struct {
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     json.Number `json:"per_page"`
	Total       int         `json:"total"`
	Query       interface{} `json:"query"`
	Seed        string      `json:"seed"`
}

// Filename derives the local file name from the remote image URL
func (w *Wallpaper) Filename() string {
	return path.Base(w.Path)
}

// Width returns the horizontal resolution, falling back to parsing the
// Resolution string when dimension fields are absent
func (w *Wallpaper) Width() int {
	if w.DimensionX > 0 {
		return w.DimensionX
	}
	x, _ := splitResolution(w.Resolution)
	return x
}

// Height returns the vertical resolution
func (w *Wallpaper) Height() int {
	if w.DimensionY > 0 {
		return w.DimensionY
	}
	_, y := splitResolution(w.Resolution)
	return y
}

func splitResolution(res string) (int, int) {
	parts := strings.SplitN(res, "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	x, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return x, y
}
