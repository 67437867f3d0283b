// Package dayclock tracks which puzzle day it currently is and when the
// next one starts. Days advance at local midnight.
package dayclock

import (
	"context"
	"fmt"
	"time"
)

// Clock supplies the current time. Injectable for tests.
type Clock func() time.Time

// DayID returns the puzzle day number for t: the day of the year in the
// local timezone of t, so every player in the same timezone plays the
// same film.
func DayID(t time.Time) int {
	return t.YearDay()
}

// NextMidnight returns the start of the calendar day after t, in t's
// location.
func NextMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, t.Location())
}

// UntilMidnight formats the remaining time before the next day as
// HH:MM:SS, for the countdown under a finished round.
func UntilMidnight(t time.Time) string {
	remaining := NextMidnight(t).Sub(t)
	if remaining < 0 {
		remaining = 0
	}
	total := int(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// civilDate is a comparable (year, day-of-year) pair in local time.
type civilDate struct {
	year int
	yday int
}

func dateOf(t time.Time) civilDate {
	return civilDate{year: t.Year(), yday: t.YearDay()}
}

// after reports whether d is a strictly later calendar day than prev.
func (d civilDate) after(prev civilDate) bool {
	if d.year != prev.year {
		return d.year > prev.year
	}
	return d.yday > prev.yday
}

// Watcher polls the clock once a second and reports when the calendar
// day moves forward. A backwards clock adjustment never fires: the day
// only ever advances.
type Watcher struct {
	clock    Clock
	interval time.Duration
	last     civilDate
}

// NewWatcher creates a watcher anchored at the clock's current day.
func NewWatcher(clock Clock) *Watcher {
	if clock == nil {
		clock = time.Now
	}
	return &Watcher{
		clock:    clock,
		interval: time.Second,
		last:     dateOf(clock()),
	}
}

// Check reports the current day id and whether the day advanced since
// the previous call. Same-day calls and backwards jumps return false.
func (w *Watcher) Check() (dayID int, changed bool) {
	now := w.clock()
	current := dateOf(now)
	if current.after(w.last) {
		w.last = current
		return DayID(now), true
	}
	return DayID(now), false
}

// Run polls until ctx is cancelled, invoking onChange once for each
// forward day change. onChange runs on the watcher's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func(dayID int)) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dayID, changed := w.Check(); changed {
				onChange(dayID)
			}
		}
	}
}
