package storage

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bpstudios/widescreen/internal/constants"
	"github.com/bpstudios/widescreen/internal/models"
)

// Data is the typed view over the raw key-value provider. Reads degrade
// to zero values: a missing or malformed entry behaves like an absent
// one and never surfaces an error to the player.
type Data struct {
	kv Provider
}

func NewData(kv Provider) *Data {
	return &Data{kv: kv}
}

// Provider returns the underlying key-value store.
func (d *Data) Provider() Provider {
	return d.kv
}

// Outcome returns the persisted round outcome for a film title.
func (d *Data) Outcome(title string) (models.OutcomeStatus, bool) {
	value, ok, err := d.kv.Get(constants.OutcomeKeyPrefix + title)
	if err != nil || !ok {
		return "", false
	}
	status := models.OutcomeStatus(value)
	if !status.Valid() {
		return "", false
	}
	return status, true
}

// SetOutcome records the terminal outcome for a film title.
func (d *Data) SetOutcome(title string, status models.OutcomeStatus) error {
	return d.kv.Set(constants.OutcomeKeyPrefix+title, string(status))
}

// Streak returns the consecutive-day correct-guess counter.
func (d *Data) Streak() int {
	value, ok, err := d.kv.Get(constants.KeyStreak)
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (d *Data) SetStreak(n int) error {
	if n < 0 {
		n = 0
	}
	return d.kv.Set(constants.KeyStreak, strconv.Itoa(n))
}

// Rating returns the locally stored score for a (title, poster) pair.
func (d *Data) Rating(title, poster string) (int, bool) {
	value, ok, err := d.kv.Get(ratingKey(title, poster))
	if err != nil || !ok {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

func (d *Data) SetRating(title, poster string, score int) error {
	return d.kv.Set(ratingKey(title, poster), strconv.Itoa(score))
}

// Ratings lists every film the player has scored, title-sorted.
func (d *Data) Ratings() []models.RatedFilm {
	keys, err := d.kv.AllKeys()
	if err != nil {
		return nil
	}

	var rated []models.RatedFilm
	for _, key := range keys {
		if !strings.HasPrefix(key, constants.RatingKeyPrefix) {
			continue
		}
		value, ok, err := d.kv.Get(key)
		if err != nil || !ok {
			continue
		}
		score, err := strconv.Atoi(value)
		if err != nil || score < 1 || score > 5 {
			continue
		}
		title, poster := splitRatingKey(key)
		rated = append(rated, models.RatedFilm{Title: title, Poster: poster, Rating: score})
	}

	sort.Slice(rated, func(i, j int) bool { return rated[i].Title < rated[j].Title })
	return rated
}

// Watchlisted reports whether the film is currently on the watchlist.
func (d *Data) Watchlisted(item models.WatchlistItem) bool {
	_, ok, err := d.kv.Get(item.Key())
	return err == nil && ok
}

// AddWatchlist stores the item; the value is the poster reference, as
// the mobile client wrote it.
func (d *Data) AddWatchlist(item models.WatchlistItem) error {
	return d.kv.Set(item.Key(), item.Poster)
}

func (d *Data) RemoveWatchlist(item models.WatchlistItem) error {
	return d.kv.Remove(item.Key())
}

// ToggleWatchlist flips membership and reports the new state.
func (d *Data) ToggleWatchlist(item models.WatchlistItem) (bool, error) {
	if d.Watchlisted(item) {
		return false, d.RemoveWatchlist(item)
	}
	return true, d.AddWatchlist(item)
}

// Watchlist scans the watchlist_ keys and rebuilds the saved items.
func (d *Data) Watchlist() []models.WatchlistItem {
	keys, err := d.kv.AllKeys()
	if err != nil {
		return nil
	}

	var items []models.WatchlistItem
	for _, key := range keys {
		if !strings.HasPrefix(key, constants.WatchlistKeyPrefix) {
			continue
		}
		item, ok := ParseWatchlistKey(key)
		if !ok {
			continue
		}
		if poster, found, err := d.kv.Get(key); err == nil && found {
			item.Poster = poster
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items
}

// ParseWatchlistKey splits a watchlist key back into its fields. The
// key joins fields with underscores, so a title or director containing
// one parses wrong; the device data was always written this way and the
// scheme is kept for compatibility.
func ParseWatchlistKey(key string) (models.WatchlistItem, bool) {
	rest := strings.TrimPrefix(key, constants.WatchlistKeyPrefix)
	parts := strings.Split(rest, "_")
	if len(parts) < 4 {
		return models.WatchlistItem{}, false
	}

	runtime, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		runtime = 0
	}

	return models.WatchlistItem{
		Title:          strings.Join(parts[:len(parts)-3], "_"),
		Director:       parts[len(parts)-3],
		ContentRating:  parts[len(parts)-2],
		RuntimeMinutes: runtime,
	}, true
}

// Preferences returns the persisted preferences blob, or the defaults
// when absent or unreadable.
func (d *Data) Preferences() models.Preferences {
	value, ok, err := d.kv.Get(constants.KeyPreferences)
	if err != nil || !ok {
		return models.DefaultPreferences()
	}

	var prefs models.Preferences
	if err := json.Unmarshal([]byte(value), &prefs); err != nil {
		return models.DefaultPreferences()
	}
	if prefs.SelectedTheme == "" {
		prefs.SelectedTheme = models.Theme1
	}
	return prefs
}

func (d *Data) SavePreferences(prefs models.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return d.kv.Set(constants.KeyPreferences, string(data))
}

func (d *Data) UserID() (string, bool) {
	value, ok, err := d.kv.Get(constants.KeyUserID)
	if err != nil || !ok || value == "" {
		return "", false
	}
	return value, true
}

func (d *Data) UserName() string {
	value, ok, err := d.kv.Get(constants.KeyUserName)
	if err != nil || !ok {
		return ""
	}
	return value
}

func (d *Data) SetUserName(name string) error {
	return d.kv.Set(constants.KeyUserName, name)
}

// SetIdentity records the generated id, the default name, and the
// first-open timestamp in one step.
func (d *Data) SetIdentity(id, name string, openedAt time.Time) error {
	if err := d.kv.Set(constants.KeyUserID, id); err != nil {
		return err
	}
	if err := d.kv.Set(constants.KeyUserName, name); err != nil {
		return err
	}
	return d.kv.Set(constants.KeyAppOpenedDate, openedAt.UTC().Format(time.RFC3339))
}

func (d *Data) AppOpenedDate() (time.Time, bool) {
	value, ok, err := d.kv.Get(constants.KeyAppOpenedDate)
	if err != nil || !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d *Data) FriendIDs() []string {
	value, ok, err := d.kv.Get(constants.KeyFriendIDs)
	if err != nil || !ok {
		return nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil
	}
	return ids
}

func (d *Data) SetFriendIDs(ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return d.kv.Set(constants.KeyFriendIDs, string(data))
}

func ratingKey(title, poster string) string {
	return constants.RatingKeyPrefix + title + "_" + poster
}

func splitRatingKey(key string) (title, poster string) {
	rest := strings.TrimPrefix(key, constants.RatingKeyPrefix)
	// Catalogue titles never contain "_", so the first one starts the
	// poster reference.
	if i := strings.Index(rest, "_"); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return rest, ""
}
