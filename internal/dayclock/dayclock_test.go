package dayclock

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestDayID(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want int
	}{
		{"new year's day", time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC), 1},
		{"early november", time.Date(2023, 11, 2, 23, 59, 59, 0, time.UTC), 306},
		{"leap year end", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), 366},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayID(tt.time); got != tt.want {
				t.Errorf("DayID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUntilMidnight(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{"just after midnight", time.Date(2023, 11, 2, 0, 0, 1, 0, time.UTC), "23:59:59"},
		{"noon", time.Date(2023, 11, 2, 12, 0, 0, 0, time.UTC), "12:00:00"},
		{"one second left", time.Date(2023, 11, 2, 23, 59, 59, 0, time.UTC), "00:00:01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UntilMidnight(tt.time); got != tt.want {
				t.Errorf("UntilMidnight() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatcherAdvances(t *testing.T) {
	now := time.Date(2023, 11, 2, 23, 59, 59, 0, time.UTC)
	watcher := NewWatcher(func() time.Time { return now })

	if _, changed := watcher.Check(); changed {
		t.Error("same day reported as change")
	}

	now = now.Add(2 * time.Second)
	dayID, changed := watcher.Check()
	if !changed {
		t.Fatal("midnight crossing not reported")
	}
	if dayID != 307 {
		t.Errorf("dayID = %d, want 307", dayID)
	}

	// Second check on the new day is quiet again
	if _, changed := watcher.Check(); changed {
		t.Error("change reported twice for one crossing")
	}
}

func TestWatcherIgnoresBackwardsClock(t *testing.T) {
	now := time.Date(2023, 11, 3, 0, 0, 5, 0, time.UTC)
	watcher := NewWatcher(func() time.Time { return now })

	now = now.Add(-24 * time.Hour)
	if _, changed := watcher.Check(); changed {
		t.Error("backwards clock jump reported as day change")
	}

	// Coming back to the anchored day is still not a change
	now = now.Add(24 * time.Hour)
	if _, changed := watcher.Check(); changed {
		t.Error("return to anchored day reported as change")
	}

	// But the following day is
	now = now.Add(24 * time.Hour)
	if _, changed := watcher.Check(); !changed {
		t.Error("advance past anchored day not reported")
	}
}

func TestWatcherYearBoundary(t *testing.T) {
	now := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	watcher := NewWatcher(func() time.Time { return now })

	now = time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)
	dayID, changed := watcher.Check()
	if !changed {
		t.Fatal("year rollover not reported")
	}
	if dayID != 1 {
		t.Errorf("dayID = %d, want 1", dayID)
	}
}

func TestWatcherRun(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2023, 11, 2, 23, 59, 59, 0, time.UTC)
	watcher := NewWatcher(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	})
	watcher.interval = time.Millisecond

	fired := make(chan int, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		watcher.Run(ctx, func(dayID int) { fired <- dayID })
		close(done)
	}()

	mu.Lock()
	now = now.Add(2 * time.Second)
	mu.Unlock()

	select {
	case dayID := <-fired:
		if dayID != 307 {
			t.Errorf("dayID = %d, want 307", dayID)
		}
	case <-time.After(time.Second):
		t.Fatal("day change never reported")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}
