// Package reviews shows the editorial review feed.
package reviews

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

type Item struct {
	Review models.Review
}

func (i Item) Title() string {
	return fmt.Sprintf("%s (%d/5)", i.Review.Title, i.Review.Rating)
}
func (i Item) Description() string { return i.Review.Date }
func (i Item) FilterValue() string { return i.Review.Title }

type Model struct {
	styles  theme.Styles
	list    list.Model
	loaded  bool
	loadErr error
}

func New(styles theme.Styles, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Reviews"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	return Model{styles: styles, list: l}
}

func (m *Model) SetReviews(reviews []models.Review) {
	items := make([]list.Item, len(reviews))
	for i, review := range reviews {
		items[i] = Item{Review: review}
	}
	m.list.SetItems(items)
	m.loaded = true
	m.loadErr = nil
}

func (m *Model) SetError(err error) {
	m.loaded = true
	m.loadErr = err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return m.styles.Dim.Render("Fetching reviews...")
	}
	if m.loadErr != nil {
		return m.styles.Danger.Render("Could not fetch reviews.") + "\n" + m.styles.Dim.Render(m.loadErr.Error())
	}
	if len(m.list.Items()) == 0 {
		return "\n  No reviews yet."
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	if selected, ok := m.list.SelectedItem().(Item); ok {
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render(selected.Review.Title))
		b.WriteString("\n")
		b.WriteString(selected.Review.Review)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height/2)
}
