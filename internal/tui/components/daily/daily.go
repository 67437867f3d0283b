// Package daily renders the guessing round: the current frame, the
// guess input with suggestions, and the finished-round screen with
// rating, watchlist and countdown.
package daily

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/suggest"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

// GuessMsg asks the root model to submit the typed guess.
type GuessMsg struct {
	Guess string
}

// RateMsg asks the root model to rate the identified film.
type RateMsg struct {
	Score int
}

// ToggleWatchlistMsg asks the root model to flip watchlist membership.
type ToggleWatchlistMsg struct{}

// ShareMsg asks the root model to show the share text.
type ShareMsg struct{}

type KeyMap struct {
	Guess     key.Binding
	Watchlist key.Binding
	Share     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Guess: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "guess"),
		),
		Watchlist: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "watchlist"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "share"),
		),
	}
}

type Model struct {
	styles theme.Styles
	keys   KeyMap
	input  textinput.Model

	state       session.State
	puzzle      models.PuzzleOfDay
	attempt     int
	frame       string
	guesses     []string
	loadErr     error
	titles      []string
	suggestions []string
	rating      int
	watchlisted bool
	streak      int
	countdown   string
	shareText   string
	width       int
	height      int
}

func New(styles theme.Styles) Model {
	input := textinput.New()
	input.Placeholder = "Which film is this?"
	input.CharLimit = 80
	input.Focus()

	return Model{
		styles: styles,
		keys:   DefaultKeyMap(),
		input:  input,
		state:  session.StateLoading,
	}
}

// SetRound updates the component after the session changes.
func (m *Model) SetRound(sess *session.Session, streak int) {
	m.state = sess.State()
	m.puzzle = sess.Puzzle()
	m.attempt = sess.Attempt()
	m.frame = sess.CurrentFrame()
	m.guesses = sess.Guesses()
	m.loadErr = sess.LoadErr()
	m.streak = streak
	if m.state == session.StateInProgress {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) SetTitles(titles []string) { m.titles = titles }
func (m *Model) SetRating(rating int) { m.rating = rating }
func (m *Model) SetWatchlisted(on bool) { m.watchlisted = on }
func (m *Model) SetCountdown(remaining string) { m.countdown = remaining }
func (m *Model) SetShareText(text string) { m.shareText = text }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = min(60, width-8)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.state.Terminal() {
		return m.updateFinished(keyMsg)
	}
	if m.state != session.StateInProgress {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Guess):
		guess := strings.TrimSpace(m.input.Value())
		if guess == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.suggestions = nil
		return m, func() tea.Msg { return GuessMsg{Guess: guess} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.suggestions = suggest.Titles(m.titles, m.input.Value())
	return m, cmd
}

func (m Model) updateFinished(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Watchlist):
		if m.state == session.StateLost {
			return m, func() tea.Msg { return ToggleWatchlistMsg{} }
		}
	case key.Matches(msg, m.keys.Share):
		return m, func() tea.Msg { return ShareMsg{} }
	}

	if m.state == session.StateWon && m.rating == 0 {
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '5' {
			score := int(s[0] - '0')
			return m, func() tea.Msg { return RateMsg{Score: score} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case session.StateLoading:
		if m.loadErr != nil {
			return m.styles.Danger.Render("Could not fetch today's film.") + "\n" +
				m.styles.Dim.Render(m.loadErr.Error()) + "\n\n" +
				m.styles.Dim.Render("Press ctrl+r to retry.")
		}
		return m.styles.Dim.Render("Fetching today's film...")
	case session.StateInProgress:
		return m.viewInProgress()
	default:
		return m.viewFinished()
	}
}

func (m Model) viewInProgress() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Frame %d of %d", m.attempt, models.FrameCount)))
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render(m.frame))
	b.WriteString("\n\n")

	if len(m.guesses) > 0 {
		for _, guess := range m.guesses {
			b.WriteString(m.styles.Lost.Render("✗ " + guess))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	for _, title := range m.suggestions {
		b.WriteString(m.styles.Dim.Render("  ↪ " + title))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewFinished() string {
	var b strings.Builder

	if m.state == session.StateWon {
		b.WriteString(m.styles.Won.Render("Seen: " + m.puzzle.Title))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s · %s · %s · %d min\n", m.puzzle.Director, m.puzzle.Genre, m.puzzle.ContentRating, m.puzzle.RuntimeMinutes))
		b.WriteString(m.styles.Dim.Render(m.puzzle.Poster))
		b.WriteString("\n\n")
		if m.rating > 0 {
			b.WriteString(fmt.Sprintf("Your rating: %s\n", strings.Repeat("★", m.rating)+strings.Repeat("☆", 5-m.rating)))
		} else {
			b.WriteString("Rate it: press 1-5\n")
		}
		if m.streak > 1 {
			b.WriteString(m.styles.Title.Render(fmt.Sprintf("Streak: %d", m.streak)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.styles.Lost.Render("Unseen: today's film was " + m.puzzle.Title))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s · %s · %s · %d min\n", m.puzzle.Director, m.puzzle.Genre, m.puzzle.ContentRating, m.puzzle.RuntimeMinutes))
		b.WriteString("\n")
		if m.watchlisted {
			b.WriteString("✓ On your watchlist (ctrl+w to remove)\n")
		} else {
			b.WriteString("ctrl+w to add it to your watchlist\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("Next film in " + m.countdown))
	b.WriteString("\n")
	if m.shareText != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Italic(true).Render(m.shareText))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.Dim.Render("ctrl+s to copy a share message here"))
		b.WriteString("\n")
	}
	return b.String()
}
