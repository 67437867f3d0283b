// Package watchlist lists the films saved for later.
package watchlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bpstudios/widescreen/internal/models"
)

// RemoveMsg asks the root model to drop an item from the store.
type RemoveMsg struct {
	Item models.WatchlistItem
}

type Item struct {
	Film models.WatchlistItem
}

func (i Item) Title() string { return i.Film.Title }
func (i Item) Description() string {
	return fmt.Sprintf("%s | %s | %d min", i.Film.Director, i.Film.ContentRating, i.Film.RuntimeMinutes)
}
func (i Item) FilterValue() string { return i.Film.Title }

type KeyMap struct {
	Remove key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(films []models.WatchlistItem, width, height int) Model {
	items := make([]list.Item, len(films))
	for i, film := range films {
		items[i] = Item{Film: film}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Watchlist"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Remove}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetFilms(films []models.WatchlistItem) {
	items := make([]list.Item, len(films))
	for i, film := range films {
		items[i] = Item{Film: film}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering && key.Matches(keyMsg, m.keys.Remove) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RemoveMsg{Item: i.Film} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing saved yet.\n  Films you miss can be added from the Daily tab."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
