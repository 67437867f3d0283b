// Package home is the landing tab: today's status at a glance plus
// teasers for the latest editorial review and community post.
package home

import (
	"fmt"
	"strings"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

type Model struct {
	styles theme.Styles

	userName  string
	streak    int
	countdown string
	state     session.State
	attempt   int

	latestReview *models.Review
	latestPost   *models.Post
	topFilms     []models.TopFilm
}

func New(styles theme.Styles) Model {
	return Model{styles: styles}
}

func (m *Model) SetUserName(name string) { m.userName = name }
func (m *Model) SetStreak(streak int) { m.streak = streak }
func (m *Model) SetCountdown(remaining string) { m.countdown = remaining }
func (m *Model) SetRound(state session.State, attempt int) {
	m.state = state
	m.attempt = attempt
}

func (m *Model) SetLatestReview(review models.Review) { m.latestReview = &review }
func (m *Model) SetLatestPost(post models.Post) { m.latestPost = &post }
func (m *Model) SetTopFilms(films []models.TopFilm) { m.topFilms = films }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Widescreen"))
	if m.userName != "" {
		b.WriteString(m.styles.Dim.Render("  hello, " + m.userName))
	}
	b.WriteString("\n\n")

	switch m.state {
	case session.StateWon:
		b.WriteString(m.styles.Won.Render("Today's film: guessed") + "\n")
	case session.StateLost:
		b.WriteString(m.styles.Lost.Render("Today's film: missed") + "\n")
	case session.StateInProgress:
		b.WriteString(fmt.Sprintf("Today's film: frame %d of %d\n", m.attempt, models.FrameCount))
	default:
		b.WriteString(m.styles.Dim.Render("Today's film: loading...") + "\n")
	}
	b.WriteString(fmt.Sprintf("Streak: %d\n", m.streak))
	if m.countdown != "" {
		b.WriteString(m.styles.Dim.Render("Next film in " + m.countdown))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.latestReview != nil {
		b.WriteString(m.styles.Highlight.Render("Latest review"))
		b.WriteString(fmt.Sprintf("\n  %s (%d/5)\n\n", m.latestReview.Title, m.latestReview.Rating))
	}
	if m.latestPost != nil {
		b.WriteString(m.styles.Highlight.Render("Latest post"))
		b.WriteString(fmt.Sprintf("\n  %s  by %s\n\n", m.latestPost.Title, m.latestPost.CreatorName))
	}
	if len(m.topFilms) > 0 {
		b.WriteString(m.styles.Highlight.Render("Community top films"))
		b.WriteString("\n")
		for i, film := range m.topFilms {
			if i == 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  %d. %s (%s)\n", i+1, film.Title, film.Director))
		}
	}
	return b.String()
}
