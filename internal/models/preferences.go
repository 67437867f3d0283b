package models

// Theme names accepted by the preferences screen.
const (
	Theme1 = "Theme1"
	Theme2 = "Theme2"
	Theme3 = "Theme3"
	Theme4 = "Theme4"
)

// Preferences is the on-device preferences blob. The JSON field names
// match what the mobile client wrote under the "preferences" key.
type Preferences struct {
	ShareRatings     bool   `json:"shareRatings"`
	ShareWithFriends bool   `json:"shareWithFriends"`
	DailyNotif       bool   `json:"dailyNotif"`
	ReviewNotif      bool   `json:"reviewNotif"`
	SelectedTheme    string `json:"selectedTheme"`
}

// DefaultPreferences returns the values used before the player has
// ever opened the preferences screen.
func DefaultPreferences() Preferences {
	return Preferences{
		ShareRatings:     true,
		ShareWithFriends: true,
		DailyNotif:       true,
		ReviewNotif:      true,
		SelectedTheme:    Theme1,
	}
}
