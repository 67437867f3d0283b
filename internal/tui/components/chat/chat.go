// Package chat renders a direct message thread with one friend.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

// SendMsg asks the root model to deliver a chat message.
type SendMsg struct {
	FriendID string
	Text     string
}

type Model struct {
	styles theme.Styles
	input  textinput.Model
	view   viewport.Model

	myID       string
	friendID   string
	friendName string
	messages   []models.Message
	loaded     bool
	loadErr    error
	width      int
}

func New(styles theme.Styles, myID string) Model {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.CharLimit = 500
	input.Focus()

	return Model{
		styles: styles,
		input:  input,
		view:   viewport.New(72, 12),
		myID:   myID,
	}
}

// SetContact switches the thread to another friend and clears the
// previous history until the next fetch lands.
func (m *Model) SetContact(friendID, name string) {
	if friendID != m.friendID {
		m.messages = nil
		m.loaded = false
		m.loadErr = nil
	}
	m.friendID = friendID
	m.friendName = name
}

func (m Model) Contact() string { return m.friendID }

func (m *Model) SetMessages(messages []models.Message) {
	m.messages = messages
	m.loaded = true
	m.loadErr = nil
	m.view.SetContent(m.renderMessages())
	m.view.GotoBottom()
}

func (m *Model) SetError(err error) {
	m.loaded = true
	m.loadErr = err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.friendID == "" {
			return m, nil
		}
		m.input.SetValue("")
		friendID := m.friendID
		return m, func() tea.Msg { return SendMsg{FriendID: friendID, Text: text} }
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.view, cmd = m.view.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) renderMessages() string {
	var b strings.Builder
	for _, msg := range m.messages {
		prefix := m.friendName
		style := m.styles.Dim
		if msg.SenderID == m.myID {
			prefix = "you"
			style = m.styles.Highlight
		}
		b.WriteString(style.Render(fmt.Sprintf("%s: ", prefix)))
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	if m.friendID == "" {
		return "\n  Open a friend from the Friends tab to start chatting."
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Chat with " + m.friendName))
	b.WriteString("\n")
	switch {
	case !m.loaded:
		b.WriteString(m.styles.Dim.Render("Loading messages..."))
	case m.loadErr != nil:
		b.WriteString(m.styles.Danger.Render("Could not load messages."))
		b.WriteString("\n")
		b.WriteString(m.styles.Dim.Render(m.loadErr.Error()))
	case len(m.messages) == 0:
		b.WriteString(m.styles.Dim.Render("No messages yet. Say hi."))
	default:
		b.WriteString(m.view.View())
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.view.Width = width - 4
	m.view.Height = max(height-6, 4)
	m.input.Width = min(60, width-8)
}
