// Package prefs edits the persisted preferences through a form.
package prefs

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

// SavedMsg asks the root model to persist the edited preferences.
type SavedMsg struct {
	Prefs models.Preferences
}

type Model struct {
	styles theme.Styles
	form   *huh.Form
	edited models.Preferences
	saved  bool
}

func New(styles theme.Styles, current models.Preferences) Model {
	m := Model{styles: styles}
	m.reset(current)
	return m
}

// SetPreferences reloads the form with the stored values.
func (m *Model) SetPreferences(prefs models.Preferences) {
	m.reset(prefs)
}

func (m *Model) reset(prefs models.Preferences) {
	m.edited = prefs
	m.saved = false
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Share ratings publicly").
			Value(&m.edited.ShareRatings),
		huh.NewConfirm().
			Title("Share ratings with friends").
			Value(&m.edited.ShareWithFriends),
		huh.NewConfirm().
			Title("Daily puzzle reminder").
			Value(&m.edited.DailyNotif),
		huh.NewConfirm().
			Title("New review notification").
			Value(&m.edited.ReviewNotif),
		huh.NewSelect[string]().
			Title("Theme").
			Options(
				huh.NewOption("Orange", models.Theme1),
				huh.NewOption("Blue", models.Theme2),
				huh.NewOption("Green", models.Theme3),
				huh.NewOption("Purple", models.Theme4),
			).
			Value(&m.edited.SelectedTheme),
	))
}

func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.saved {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.saved = true
		prefs := m.edited
		return m, func() tea.Msg { return SavedMsg{Prefs: prefs} }
	}
	return m, cmd
}

func (m Model) View() string {
	if m.saved {
		return m.styles.Won.Render("Preferences saved.") + "\n" +
			m.styles.Dim.Render("Switch tabs to keep playing.")
	}
	return m.form.View()
}
