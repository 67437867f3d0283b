// Package validation checks user input before it reaches storage or
// the backend.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bpstudios/widescreen/internal/models"
)

// ValidateRating checks a score is in the accepted range.
func ValidateRating(score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", score)
	}
	return nil
}

// ValidateTheme checks a theme name is one the palettes know.
func ValidateTheme(theme string) error {
	switch theme {
	case models.Theme1, models.Theme2, models.Theme3, models.Theme4:
		return nil
	}
	return fmt.Errorf("unknown theme %q (use %s..%s)", theme, models.Theme1, models.Theme4)
}

// ValidateUserName checks a display name is usable: non-blank and
// short enough for the profile endpoints.
func ValidateUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > 32 {
		return fmt.Errorf("name is too long (max 32 characters)")
	}
	return nil
}

// ApplyPreference sets one named preference from its string form.
func ApplyPreference(prefs *models.Preferences, name, value string) error {
	if name == "theme" {
		if err := ValidateTheme(value); err != nil {
			return err
		}
		prefs.SelectedTheme = value
		return nil
	}

	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("value for %s must be true or false", name)
	}
	switch name {
	case "share-ratings":
		prefs.ShareRatings = enabled
	case "share-with-friends":
		prefs.ShareWithFriends = enabled
	case "daily-notif":
		prefs.DailyNotif = enabled
	case "review-notif":
		prefs.ReviewNotif = enabled
	default:
		return fmt.Errorf("unknown preference %q", name)
	}
	return nil
}
