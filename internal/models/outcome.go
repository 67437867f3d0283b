package models

// OutcomeStatus records how a past round for a film ended. Written once
// when a round reaches its terminal state and never mutated afterwards.
type OutcomeStatus string

const (
	// OutcomeSeen means the player identified the film.
	OutcomeSeen OutcomeStatus = "Seen"
	// OutcomeUnseen means the player exhausted all attempts.
	OutcomeUnseen OutcomeStatus = "Unseen"
)

// Valid reports whether s is one of the two persisted outcome values.
// Anything else found in storage is treated as no outcome at all.
func (s OutcomeStatus) Valid() bool {
	return s == OutcomeSeen || s == OutcomeUnseen
}

// RatingSubmission is the payload sent to the rating and activity
// endpoints after the player scores a film.
type RatingSubmission struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Rating    int    `json:"rating"`
}
