// Package session runs a single day's guessing round: fetch the film,
// take up to five guesses, persist the outcome, accept a rating.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bpstudios/widescreen/internal/dayclock"
	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/storage"
)

// State is the round's lifecycle position. Won and Lost are absorbing:
// once reached, only a day rollover produces a fresh round.
type State int

const (
	// StateLoading means the day's film has not arrived yet.
	StateLoading State = iota
	// StateInProgress means guesses are being accepted.
	StateInProgress
	// StateWon means the film was identified.
	StateWon
	// StateLost means all attempts were spent.
	StateLost
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	}
	return "unknown"
}

// Terminal reports whether the round has ended.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// Fetcher resolves the film behind a day id.
type Fetcher interface {
	PuzzleOfDay(ctx context.Context, dayID int) (models.PuzzleOfDay, error)
}

var (
	// ErrNotAcceptingGuesses is returned when a guess arrives outside
	// an in-progress round.
	ErrNotAcceptingGuesses = errors.New("round is not accepting guesses")
	// ErrNotWon is returned when a rating arrives for a round that was
	// not won.
	ErrNotWon = errors.New("only an identified film can be rated")
	// ErrAlreadyRated is returned when the film already has a score.
	ErrAlreadyRated = errors.New("film already rated")
	// ErrInvalidRating is returned for scores outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrNoIdentity is returned when a rating is submitted before the
	// player has an id.
	ErrNoIdentity = errors.New("no player identity, run 'widescreen init' first")
)

// Session is the state machine for the current day's round. All methods
// are safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	data  *storage.Data
	fetch Fetcher
	clock dayclock.Clock

	state   State
	dayID   int
	puzzle  models.PuzzleOfDay
	attempt int
	guesses []string
	loadErr error
}

// New creates a session over the given store and fetcher. Pass a nil
// clock to use wall time.
func New(data *storage.Data, fetch Fetcher, clock dayclock.Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		data:  data,
		fetch: fetch,
		clock: clock,
		state: StateLoading,
	}
}

// Start loads the current day's film and opens the round. If the round
// for this film already ended on this device, the session lands
// directly in the recorded terminal state without touching the streak.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	dayID := dayclock.DayID(s.clock())
	s.resetLocked(dayID)
	s.mu.Unlock()

	return s.load(ctx, dayID)
}

// Rollover moves the session to the given day. Calling it with the day
// the session is already on is a no-op, so repeated ticks after one
// midnight crossing are harmless.
func (s *Session) Rollover(ctx context.Context, dayID int) error {
	s.mu.Lock()
	if dayID == s.dayID {
		s.mu.Unlock()
		return nil
	}
	s.resetLocked(dayID)
	s.mu.Unlock()

	return s.load(ctx, dayID)
}

func (s *Session) resetLocked(dayID int) {
	s.state = StateLoading
	s.dayID = dayID
	s.puzzle = models.PuzzleOfDay{}
	s.attempt = 1
	s.guesses = nil
	s.loadErr = nil
}

// load fetches the film and installs it unless the session has moved to
// a different day while the fetch was in flight.
func (s *Session) load(ctx context.Context, dayID int) error {
	puzzle, err := s.fetch.PuzzleOfDay(ctx, dayID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dayID != dayID {
		// A rollover superseded this fetch; drop the response.
		return nil
	}
	if err != nil {
		s.loadErr = err
		return err
	}

	s.puzzle = puzzle
	if status, ok := s.data.Outcome(puzzle.Title); ok {
		if status == models.OutcomeSeen {
			s.state = StateWon
		} else {
			s.state = StateLost
		}
		return nil
	}
	s.state = StateInProgress
	return nil
}

// SubmitGuess takes one guess. Blank input is ignored without spending
// an attempt. Matching is case-insensitive on the exact title.
func (s *Session) SubmitGuess(guess string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return s.state, ErrNotAcceptingGuesses
	}

	guess = strings.TrimSpace(guess)
	if guess == "" {
		return s.state, nil
	}

	s.guesses = append(s.guesses, guess)
	if strings.EqualFold(guess, s.puzzle.Title) {
		s.state = StateWon
		if err := s.finishLocked(true); err != nil {
			return s.state, err
		}
		return s.state, nil
	}

	if s.attempt >= models.FrameCount {
		s.state = StateLost
		if err := s.finishLocked(false); err != nil {
			return s.state, err
		}
		return s.state, nil
	}
	s.attempt++
	return s.state, nil
}

// finishLocked persists the outcome and the updated streak.
func (s *Session) finishLocked(won bool) error {
	status := models.OutcomeUnseen
	if won {
		status = models.OutcomeSeen
	}
	if err := s.data.SetOutcome(s.puzzle.Title, status); err != nil {
		return err
	}
	return s.data.SetStreak(NextStreak(s.data.Streak(), won))
}

// Rate records the player's score for a won round and returns the
// payload to send to the backend. A film is rated at most once.
func (s *Session) Rate(score int) (models.RatingSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateWon {
		return models.RatingSubmission{}, ErrNotWon
	}
	if score < 1 || score > 5 {
		return models.RatingSubmission{}, ErrInvalidRating
	}
	if _, ok := s.data.Rating(s.puzzle.Title, s.puzzle.Poster); ok {
		return models.RatingSubmission{}, ErrAlreadyRated
	}
	userID, ok := s.data.UserID()
	if !ok {
		return models.RatingSubmission{}, ErrNoIdentity
	}

	if err := s.data.SetRating(s.puzzle.Title, s.puzzle.Poster, score); err != nil {
		return models.RatingSubmission{}, err
	}
	return models.RatingSubmission{
		RequestID: uuid.NewString(),
		UserID:    userID,
		Name:      s.data.UserName(),
		Day:       s.dayID,
		Title:     s.puzzle.Title,
		Rating:    score,
	}, nil
}

// State returns the round's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// DayID returns the day the session is currently on.
func (s *Session) DayID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dayID
}

// Puzzle returns the loaded film. Zero value while loading.
func (s *Session) Puzzle() models.PuzzleOfDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puzzle
}

// Attempt returns the 1-based attempt the player is on.
func (s *Session) Attempt() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Guesses returns the guesses taken so far, oldest first.
func (s *Session) Guesses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.guesses))
	copy(out, s.guesses)
	return out
}

// CurrentFrame returns the still to show for the attempt in progress,
// or the last one after the round ends.
func (s *Session) CurrentFrame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	attempt := s.attempt
	if s.state.Terminal() {
		attempt = len(s.puzzle.Frames)
	}
	return s.puzzle.Frame(attempt)
}

// LoadErr returns the last fetch failure, if the round never loaded.
func (s *Session) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}
