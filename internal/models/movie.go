package models

import "strconv"

// FrameCount is the number of progressively revealed stills per film.
const FrameCount = 5

// PuzzleOfDay is the film behind a single day's round. Immutable once
// fetched: the same day id always resolves to the same film.
type PuzzleOfDay struct {
	DayID          int      `json:"day_id"`
	Title          string   `json:"title"`
	Director       string   `json:"director"`
	Genre          string   `json:"genre"`
	ContentRating  string   `json:"content_rating"`
	RuntimeMinutes int      `json:"runtime_minutes"`
	Frames         []string `json:"frames"`
	Poster         string   `json:"poster"`
}

// Frame returns the image reference for a 1-based attempt index.
func (p PuzzleOfDay) Frame(attempt int) string {
	if attempt < 1 || attempt > len(p.Frames) {
		return ""
	}
	return p.Frames[attempt-1]
}

// WatchlistItem is one saved film, keyed by the same composite the
// mobile client used so existing device data keeps resolving.
type WatchlistItem struct {
	Title          string `json:"title"`
	Director       string `json:"director"`
	ContentRating  string `json:"content_rating"`
	RuntimeMinutes int    `json:"runtime_minutes"`
	Poster         string `json:"poster"`
}

// Key returns the storage key for the item.
func (w WatchlistItem) Key() string {
	return "watchlist_" + w.Title + "_" + w.Director + "_" + w.ContentRating + "_" + strconv.Itoa(w.RuntimeMinutes)
}

// WatchlistEntry builds the watchlist item for a puzzle's film.
func WatchlistEntry(p PuzzleOfDay) WatchlistItem {
	return WatchlistItem{
		Title:          p.Title,
		Director:       p.Director,
		ContentRating:  p.ContentRating,
		RuntimeMinutes: p.RuntimeMinutes,
		Poster:         p.Poster,
	}
}
