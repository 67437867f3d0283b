package constants

// Storage keys. The names are the ones the original device data was
// written under, so an existing key-value store keeps resolving.
const (
	KeyStreak        = "streak"
	KeyPreferences   = "preferences"
	KeyUserID        = "userID"
	KeyUserName      = "userName"
	KeyFriendIDs     = "friendIDs"
	KeyAppOpenedDate = "appOpenedDate"

	// Per-film keys are prefix + composite suffix.
	OutcomeKeyPrefix   = "index_"
	RatingKeyPrefix    = "rating_"
	WatchlistKeyPrefix = "watchlist_"
)

const (
	// GameURL is appended to every share message.
	GameURL = "https://bpstudios.nl/widescreen"

	// DefaultAPIBase is the backend root; override with --api-base.
	DefaultAPIBase = "https://bpstudios.nl/widescreen/api"
)
