// Package friends shows the activity feed of the people the player
// follows and handles the friend-request flow.
package friends

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

// AddFriendMsg asks the root model to send a friend request.
type AddFriendMsg struct {
	FriendID string
}

// AcceptRequestMsg asks the root model to accept a pending request.
type AcceptRequestMsg struct {
	RequesterID string
}

// OpenChatMsg asks the root model to open the chat tab for a friend.
type OpenChatMsg struct {
	FriendID string
	Name     string
}

type Item struct {
	Activity models.FriendActivity
}

func (i Item) Title() string { return i.Activity.Name }
func (i Item) Description() string {
	if i.Activity.Title == "" {
		return "No activity yet"
	}
	return fmt.Sprintf("rated %s %d/5 on day %d", i.Activity.Title, i.Activity.Rating, i.Activity.Day)
}
func (i Item) FilterValue() string { return i.Activity.Name }

type KeyMap struct {
	Add    key.Binding
	Accept key.Binding
	Chat   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add friend"),
		),
		Accept: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "accept request"),
		),
		Chat: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "chat"),
		),
	}
}

type Model struct {
	styles   theme.Styles
	keys     KeyMap
	list     list.Model
	requests []string

	form     *huh.Form
	friendID string
	loaded   bool
	loadErr  error
}

func New(styles theme.Styles, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Friends"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Accept, keys.Chat}
	}

	return Model{styles: styles, keys: keys, list: l}
}

func (m *Model) SetActivity(activity []models.FriendActivity) {
	items := make([]list.Item, len(activity))
	for i, a := range activity {
		items[i] = Item{Activity: a}
	}
	m.list.SetItems(items)
	m.loaded = true
	m.loadErr = nil
}

func (m *Model) SetRequests(ids []string) {
	m.requests = ids
}

func (m *Model) SetError(err error) {
	m.loaded = true
	m.loadErr = err
}

// Composing reports whether the add-friend form owns the keyboard.
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

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			m.friendID = ""
			m.form = huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Friend's player id").Value(&m.friendID),
			))
			return m, m.form.Init()
		case key.Matches(keyMsg, m.keys.Accept):
			if len(m.requests) > 0 {
				id := m.requests[0]
				return m, func() tea.Msg { return AcceptRequestMsg{RequesterID: id} }
			}
		case key.Matches(keyMsg, m.keys.Chat):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return OpenChatMsg{FriendID: i.Activity.ID, Name: i.Activity.Name}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
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
		id := strings.TrimSpace(m.friendID)
		m.form = nil
		if id == "" {
			return m, cmd
		}
		return m, func() tea.Msg { return AddFriendMsg{FriendID: id} }
	}
	return m, cmd
}

func (m Model) View() string {
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	if len(m.requests) > 0 {
		b.WriteString(m.styles.Highlight.Render(
			fmt.Sprintf("%d pending friend request(s): %s", len(m.requests), strings.Join(m.requests, ", "))))
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render("Press 'y' to accept the first one."))
		b.WriteString("\n\n")
	}

	switch {
	case !m.loaded:
		b.WriteString(m.styles.Dim.Render("Fetching friend activity..."))
	case m.loadErr != nil:
		b.WriteString(m.styles.Danger.Render("Could not fetch friend activity."))
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render(m.loadErr.Error()))
	case len(m.list.Items()) == 0:
		b.WriteString("\n  No friends yet. Press 'a' to add one by id.")
	default:
		b.WriteString(m.list.View())
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height-4)
}
