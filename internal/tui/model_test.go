package tui

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/bpstudios/widescreen/internal/api"
	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/storage"
)

func newTestModel(t *testing.T, reviewNotif bool) Model {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "widescreen.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	data := storage.NewData(store)
	preferences := data.Preferences()
	preferences.ReviewNotif = reviewNotif
	if err := data.SavePreferences(preferences); err != nil {
		t.Fatal(err)
	}
	return NewModel(data, api.New(""), zap.NewNop())
}

func feedReview(t *testing.T, m Model, review models.Review) Model {
	t.Helper()
	next, _ := m.Update(latestReviewMsg{review: review})
	updated, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return updated
}

func TestNewReviewNotifies(t *testing.T) {
	m := newTestModel(t, true)
	var notified []string
	m.notify = func(text string) error {
		notified = append(notified, text)
		return nil
	}

	m = feedReview(t, m, models.Review{ID: 41, Title: "Heat"})
	if len(notified) != 0 {
		t.Fatalf("first fetch notified: %v", notified)
	}

	m = feedReview(t, m, models.Review{ID: 41, Title: "Heat"})
	if len(notified) != 0 {
		t.Fatalf("unchanged review notified: %v", notified)
	}

	m = feedReview(t, m, models.Review{ID: 42, Title: "Oldboy"})
	if len(notified) != 1 {
		t.Fatalf("notifications = %v, want one", notified)
	}
	if notified[0] != "New review: Oldboy" {
		t.Errorf("notification = %q", notified[0])
	}

	feedReview(t, m, models.Review{ID: 42, Title: "Oldboy"})
	if len(notified) != 1 {
		t.Errorf("repeated review notified again: %v", notified)
	}
}

func TestNewReviewQuietWhenDisabled(t *testing.T) {
	m := newTestModel(t, false)
	var notified []string
	m.notify = func(text string) error {
		notified = append(notified, text)
		return nil
	}

	m = feedReview(t, m, models.Review{ID: 41, Title: "Heat"})
	feedReview(t, m, models.Review{ID: 42, Title: "Oldboy"})
	if len(notified) != 0 {
		t.Errorf("disabled preference still notified: %v", notified)
	}
}
