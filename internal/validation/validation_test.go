package validation

import (
	"strings"
	"testing"

	"github.com/bpstudios/widescreen/internal/models"
)

func TestValidateRating(t *testing.T) {
	for _, score := range []int{1, 3, 5} {
		if err := ValidateRating(score); err != nil {
			t.Errorf("ValidateRating(%d) = %v", score, err)
		}
	}
	for _, score := range []int{0, 6, -1} {
		if err := ValidateRating(score); err == nil {
			t.Errorf("ValidateRating(%d) accepted", score)
		}
	}
}

func TestValidateTheme(t *testing.T) {
	if err := ValidateTheme(models.Theme2); err != nil {
		t.Error(err)
	}
	if err := ValidateTheme("Midnight"); err == nil {
		t.Error("unknown theme accepted")
	}
}

func TestValidateUserName(t *testing.T) {
	if err := ValidateUserName("filmfan"); err != nil {
		t.Error(err)
	}
	if err := ValidateUserName("   "); err == nil {
		t.Error("blank name accepted")
	}
	if err := ValidateUserName(strings.Repeat("x", 40)); err == nil {
		t.Error("overlong name accepted")
	}
}

func TestApplyPreference(t *testing.T) {
	prefs := models.DefaultPreferences()

	if err := ApplyPreference(&prefs, "share-ratings", "false"); err != nil {
		t.Fatal(err)
	}
	if prefs.ShareRatings {
		t.Error("share-ratings not applied")
	}

	if err := ApplyPreference(&prefs, "theme", models.Theme4); err != nil {
		t.Fatal(err)
	}
	if prefs.SelectedTheme != models.Theme4 {
		t.Error("theme not applied")
	}

	if err := ApplyPreference(&prefs, "theme", "nope"); err == nil {
		t.Error("invalid theme accepted")
	}
	if err := ApplyPreference(&prefs, "daily-notif", "maybe"); err == nil {
		t.Error("non-boolean accepted")
	}
	if err := ApplyPreference(&prefs, "volume", "true"); err == nil {
		t.Error("unknown preference accepted")
	}
}
