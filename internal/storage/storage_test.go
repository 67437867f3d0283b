package storage

import (
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bpstudios/widescreen/internal/models"
)

func newTestProviders(t *testing.T) map[string]Provider {
	t.Helper()

	dir := t.TempDir()
	sqlite := NewSQLiteStore(filepath.Join(dir, "widescreen.db"))
	if err := sqlite.Init(); err != nil {
		t.Fatalf("sqlite init failed: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	jsonStore := NewJSONStore(filepath.Join(dir, "widescreen.json"))
	if err := jsonStore.Init(); err != nil {
		t.Fatalf("json init failed: %v", err)
	}

	return map[string]Provider{
		"sqlite": sqlite,
		"json":   jsonStore,
	}
}

func TestProviderRoundTrip(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("missing"); err != nil || ok {
				t.Errorf("missing key: got ok=%v err=%v, want absent", ok, err)
			}

			if err := kv.Set("streak", "3"); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			value, ok, err := kv.Get("streak")
			if err != nil || !ok || value != "3" {
				t.Errorf("get after set: got %q ok=%v err=%v", value, ok, err)
			}

			if err := kv.Set("streak", "4"); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			value, _, _ = kv.Get("streak")
			if value != "4" {
				t.Errorf("overwrite: got %q, want 4", value)
			}

			if err := kv.Remove("streak"); err != nil {
				t.Fatalf("remove failed: %v", err)
			}
			if _, ok, _ := kv.Get("streak"); ok {
				t.Error("key still present after remove")
			}

			// Removing an absent key is not an error
			if err := kv.Remove("streak"); err != nil {
				t.Errorf("remove of absent key errored: %v", err)
			}
		})
	}
}

func TestProviderAllKeys(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"index_Parasite", "watchlist_Heat_Mann_15_170", "streak"} {
				if err := kv.Set(key, "x"); err != nil {
					t.Fatal(err)
				}
			}

			keys, err := kv.AllKeys()
			if err != nil {
				t.Fatalf("AllKeys failed: %v", err)
			}
			if len(keys) != 3 {
				t.Errorf("expected 3 keys, got %d: %v", len(keys), keys)
			}
		})
	}
}

func TestDataOutcome(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)

			if _, ok := data.Outcome("Parasite"); ok {
				t.Error("expected no outcome for unseen film")
			}

			if err := data.SetOutcome("Parasite", models.OutcomeSeen); err != nil {
				t.Fatal(err)
			}
			status, ok := data.Outcome("Parasite")
			if !ok || status != models.OutcomeSeen {
				t.Errorf("got %q ok=%v, want Seen", status, ok)
			}

			// Garbage in storage reads as absence
			if err := kv.Set("index_Heat", "Maybe"); err != nil {
				t.Fatal(err)
			}
			if _, ok := data.Outcome("Heat"); ok {
				t.Error("malformed outcome value should read as absent")
			}
		})
	}
}

func TestDataStreak(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)

			if got := data.Streak(); got != 0 {
				t.Errorf("fresh streak = %d, want 0", got)
			}

			if err := data.SetStreak(7); err != nil {
				t.Fatal(err)
			}
			if got := data.Streak(); got != 7 {
				t.Errorf("streak = %d, want 7", got)
			}

			if err := kv.Set("streak", "not-a-number"); err != nil {
				t.Fatal(err)
			}
			if got := data.Streak(); got != 0 {
				t.Errorf("malformed streak = %d, want 0", got)
			}

			if err := data.SetStreak(-3); err != nil {
				t.Fatal(err)
			}
			if got := data.Streak(); got != 0 {
				t.Errorf("negative streak clamped to %d, want 0", got)
			}
		})
	}
}

func TestDataRatings(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)

			if _, ok := data.Rating("Oldboy", "poster.jpg"); ok {
				t.Error("expected no rating before one is stored")
			}

			if err := data.SetRating("Oldboy", "poster.jpg", 4); err != nil {
				t.Fatal(err)
			}
			score, ok := data.Rating("Oldboy", "poster.jpg")
			if !ok || score != 4 {
				t.Errorf("rating = %d ok=%v, want 4", score, ok)
			}

			if err := data.SetRating("Heat", "heat.jpg", 5); err != nil {
				t.Fatal(err)
			}
			rated := data.Ratings()
			if len(rated) != 2 {
				t.Fatalf("expected 2 rated films, got %d", len(rated))
			}
			if rated[0].Title != "Heat" || rated[1].Title != "Oldboy" {
				t.Errorf("unexpected sort order: %v", rated)
			}
		})
	}
}

func TestDataWatchlist(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)
			item := models.WatchlistItem{
				Title:          "Heat",
				Director:       "Michael Mann",
				ContentRating:  "15",
				RuntimeMinutes: 170,
				Poster:         "https://img.example/heat.jpg",
			}

			if data.Watchlisted(item) {
				t.Error("item watchlisted before add")
			}

			added, err := data.ToggleWatchlist(item)
			if err != nil || !added {
				t.Fatalf("toggle add: added=%v err=%v", added, err)
			}
			if !data.Watchlisted(item) {
				t.Error("item not watchlisted after add")
			}

			items := data.Watchlist()
			if len(items) != 1 {
				t.Fatalf("expected 1 watchlist item, got %d", len(items))
			}
			if items[0].Title != "Heat" || items[0].RuntimeMinutes != 170 || items[0].Poster != item.Poster {
				t.Errorf("round-tripped item mismatch: %+v", items[0])
			}

			added, err = data.ToggleWatchlist(item)
			if err != nil || added {
				t.Fatalf("toggle remove: added=%v err=%v", added, err)
			}
			if len(data.Watchlist()) != 0 {
				t.Error("watchlist not empty after toggle off")
			}
		})
	}
}

func TestDataPreferences(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)

			prefs := data.Preferences()
			if !prefs.ShareRatings || !prefs.DailyNotif || prefs.SelectedTheme != models.Theme1 {
				t.Errorf("defaults wrong: %+v", prefs)
			}

			prefs.ShareRatings = false
			prefs.SelectedTheme = models.Theme3
			if err := data.SavePreferences(prefs); err != nil {
				t.Fatal(err)
			}

			got := data.Preferences()
			if got.ShareRatings || got.SelectedTheme != models.Theme3 {
				t.Errorf("round trip wrong: %+v", got)
			}

			// Corrupt blob falls back to defaults
			if err := kv.Set("preferences", "{broken"); err != nil {
				t.Fatal(err)
			}
			got = data.Preferences()
			if !got.ShareRatings || got.SelectedTheme != models.Theme1 {
				t.Errorf("corrupt blob should yield defaults, got %+v", got)
			}
		})
	}
}

func TestDataIdentity(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)

			if _, ok := data.UserID(); ok {
				t.Error("expected no identity on fresh store")
			}

			opened := time.Date(2023, 11, 2, 9, 30, 0, 0, time.UTC)
			if err := data.SetIdentity("52079", "user52079", opened); err != nil {
				t.Fatal(err)
			}

			id, ok := data.UserID()
			if !ok || id != "52079" {
				t.Errorf("user id = %q ok=%v", id, ok)
			}
			if name := data.UserName(); name != "user52079" {
				t.Errorf("user name = %q", name)
			}
			got, ok := data.AppOpenedDate()
			if !ok || !got.Equal(opened) {
				t.Errorf("app opened date = %v ok=%v", got, ok)
			}
		})
	}
}

func TestParseWatchlistKey(t *testing.T) {
	item, ok := ParseWatchlistKey("watchlist_The Third Man_Carol Reed_PG_104")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if item.Title != "The Third Man" || item.Director != "Carol Reed" || item.ContentRating != "PG" || item.RuntimeMinutes != 104 {
		t.Errorf("parsed item mismatch: %+v", item)
	}

	if _, ok := ParseWatchlistKey("watchlist_short"); ok {
		t.Error("expected parse failure for truncated key")
	}
}

func TestDataFriendIDs(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			data := NewData(kv)

			if ids := data.FriendIDs(); ids != nil {
				t.Errorf("fresh friend ids = %v, want none", ids)
			}

			if err := data.SetFriendIDs([]string{"1001", "52079"}); err != nil {
				t.Fatal(err)
			}
			ids := data.FriendIDs()
			if len(ids) != 2 || ids[1] != "52079" {
				t.Errorf("friend ids = %v", ids)
			}
		})
	}
}

func TestProviderConcurrentAccess(t *testing.T) {
	for name, kv := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := kv.Set("index_Oldboy", "Seen"); err != nil {
				t.Fatal(err)
			}

			var wg sync.WaitGroup
			start := make(chan struct{})
			for range 4 {
				wg.Add(2)
				go func() {
					defer wg.Done()
					<-start
					for i := 0; i < 50; i++ {
						if _, _, err := kv.Get("index_Oldboy"); err != nil {
							t.Errorf("get failed: %v", err)
							return
						}
						if _, err := kv.AllKeys(); err != nil {
							t.Errorf("allkeys failed: %v", err)
							return
						}
					}
				}()
				go func() {
					defer wg.Done()
					<-start
					for i := 0; i < 50; i++ {
						if err := kv.Set("preferences", strconv.Itoa(i)); err != nil {
							t.Errorf("set failed: %v", err)
							return
						}
					}
				}()
			}
			close(start)
			wg.Wait()

			value, ok, err := kv.Get("index_Oldboy")
			if err != nil || !ok || value != "Seen" {
				t.Errorf("after concurrent access got (%q, %v, %v), want Seen", value, ok, err)
			}
		})
	}
}
