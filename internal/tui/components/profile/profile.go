// Package profile renders the player's own profile card and handles
// renaming.
package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/tui/theme"
	"github.com/bpstudios/widescreen/internal/validation"
)

// RenameMsg asks the root model to persist and upload the new name.
type RenameMsg struct {
	Name string
}

type KeyMap struct {
	Rename key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
	}
}

type Model struct {
	styles theme.Styles
	keys   KeyMap

	userID    string
	userName  string
	userSince string
	streak    int
	ratings   []models.RatedFilm

	form     *huh.Form
	formName string
}

func New(styles theme.Styles) Model {
	return Model{styles: styles, keys: DefaultKeyMap()}
}

func (m *Model) SetIdentity(userID, userName, userSince string) {
	m.userID = userID
	m.userName = userName
	m.userSince = userSince
}

func (m *Model) SetStreak(streak int) { m.streak = streak }
func (m *Model) SetRatings(ratings []models.RatedFilm) { m.ratings = ratings }

// Composing reports whether the rename form owns the keyboard.
func (m Model) Composing() bool {
	return m.form != nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Rename) {
		m.formName = m.userName
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Display name").
				Value(&m.formName).
				Validate(validation.ValidateUserName),
		))
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		name := strings.TrimSpace(m.formName)
		m.form = nil
		if name == "" || name == m.userName {
			return m, cmd
		}
		m.userName = name
		return m, func() tea.Msg { return RenameMsg{Name: name} }
	}
	return m, cmd
}

func (m Model) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.userName))
	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  id %s", m.userID)))
	b.WriteString("\n")
	if m.userSince != "" {
		b.WriteString(m.styles.Dim.Render("Playing since " + m.userSince))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Current streak: %d\n\n", m.streak))

	b.WriteString(m.styles.Highlight.Render(fmt.Sprintf("Rated films (%d)", len(m.ratings))))
	b.WriteString("\n")
	if len(m.ratings) == 0 {
		b.WriteString(m.styles.Dim.Render("  Nothing rated yet."))
		b.WriteString("\n")
	}
	for _, film := range m.ratings {
		stars := strings.Repeat("★", film.Rating) + strings.Repeat("☆", 5-film.Rating)
		b.WriteString(fmt.Sprintf("  %s  %s\n", stars, film.Title))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("r rename · share your id so friends can add you"))
	return b.String()
}
