// Package community shows the public post feed with likes and
// comments, and lets the player publish posts of their own.
package community

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

// LikeMsg asks the root model to toggle a like.
type LikeMsg struct {
	PostID int
	Liked  bool
}

// SubmitPostMsg asks the root model to publish a post.
type SubmitPostMsg struct {
	Title   string
	Content string
}

// SubmitCommentMsg asks the root model to comment on a post.
type SubmitCommentMsg struct {
	PostID  int
	Content string
}

type Item struct {
	Post models.Post
}

func (i Item) Title() string { return i.Post.Title }
func (i Item) Description() string {
	return fmt.Sprintf("%s · %s · %d likes · %d comments",
		i.Post.CreatorName, i.Post.PostDate, len(i.Post.LikerIDs), len(i.Post.Comments))
}
func (i Item) FilterValue() string { return i.Post.Title }

type KeyMap struct {
	Like    key.Binding
	NewPost key.Binding
	Comment key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		NewPost: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new post"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
	}
}

type Model struct {
	styles theme.Styles
	keys   KeyMap
	list   list.Model
	userID string

	form          *huh.Form
	formTitle     string
	formContent   string
	commentPostID int
	loaded        bool
	loadErr       error
}

func New(styles theme.Styles, userID string, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Community"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Like, keys.NewPost, keys.Comment}
	}

	return Model{styles: styles, keys: keys, list: l, userID: userID}
}

func (m *Model) SetPosts(posts []models.Post) {
	items := make([]list.Item, len(posts))
	for i, post := range posts {
		items[i] = Item{Post: post}
	}
	m.list.SetItems(items)
	m.loaded = true
	m.loadErr = nil
}

func (m *Model) SetError(err error) {
	m.loaded = true
	m.loadErr = err
}

// Composing reports whether a form owns the keyboard.
func (m Model) Composing() bool {
	return m.form != nil
}

func (m *Model) startPostForm() {
	m.formTitle = ""
	m.formContent = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Post title").Value(&m.formTitle),
		huh.NewText().Title("What did you think?").Value(&m.formContent),
	))
	m.commentPostID = 0
}

func (m *Model) startCommentForm(postID int) {
	m.formContent = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().Title("Your comment").Value(&m.formContent),
	))
	m.commentPostID = postID
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
		case key.Matches(keyMsg, m.keys.Like):
			if i, ok := m.list.SelectedItem().(Item); ok {
				liked := i.Post.LikedBy(m.userID)
				return m, func() tea.Msg { return LikeMsg{PostID: i.Post.PostID, Liked: liked} }
			}
		case key.Matches(keyMsg, m.keys.NewPost):
			m.startPostForm()
			return m, m.form.Init()
		case key.Matches(keyMsg, m.keys.Comment):
			if i, ok := m.list.SelectedItem().(Item); ok {
				m.startCommentForm(i.Post.PostID)
				return m, m.form.Init()
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
		postID := m.commentPostID
		title := strings.TrimSpace(m.formTitle)
		content := strings.TrimSpace(m.formContent)
		m.form = nil
		if content == "" {
			return m, cmd
		}
		if postID != 0 {
			return m, func() tea.Msg { return SubmitCommentMsg{PostID: postID, Content: content} }
		}
		if title == "" {
			return m, cmd
		}
		return m, func() tea.Msg { return SubmitPostMsg{Title: title, Content: content} }
	}
	return m, cmd
}

func (m Model) View() string {
	if m.form != nil {
		return m.form.View()
	}
	if !m.loaded {
		return m.styles.Dim.Render("Fetching posts...")
	}
	if m.loadErr != nil {
		return m.styles.Danger.Render("Could not fetch posts.") + "\n" + m.styles.Dim.Render(m.loadErr.Error())
	}
	if len(m.list.Items()) == 0 {
		return "\n  No posts yet. Press 'n' to write the first one."
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	if selected, ok := m.list.SelectedItem().(Item); ok {
		post := selected.Post
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render(post.Title))
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  by %s", post.CreatorName)))
		b.WriteString("\n")
		b.WriteString(post.Content)
		b.WriteString("\n")
		if post.LikedBy(m.userID) {
			b.WriteString(m.styles.Won.Render(fmt.Sprintf("♥ %d", len(post.LikerIDs))))
		} else {
			b.WriteString(m.styles.Dim.Render(fmt.Sprintf("♥ %d", len(post.LikerIDs))))
		}
		b.WriteString("\n")
		for _, comment := range post.Comments {
			b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  %s: ", comment.CreatorName)))
			b.WriteString(comment.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height/2)
}
