package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bpstudios/widescreen/internal/api"
	"github.com/bpstudios/widescreen/internal/dayclock"
	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/share"
	"github.com/bpstudios/widescreen/internal/tui/components/chat"
	"github.com/bpstudios/widescreen/internal/tui/components/community"
	"github.com/bpstudios/widescreen/internal/tui/components/daily"
	"github.com/bpstudios/widescreen/internal/tui/components/friends"
	"github.com/bpstudios/widescreen/internal/tui/components/prefs"
	"github.com/bpstudios/widescreen/internal/tui/components/profile"
	"github.com/bpstudios/widescreen/internal/tui/components/watchlist"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.setSizes()
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case tickMsg:
		return m.handleTick()

	case roundLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("round load failed", zap.Error(msg.err))
		}
		m.syncRound()
		return m, nil

	case titlesMsg:
		if msg.err != nil {
			m.logger.Warn("title list fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.dailyModel.SetTitles(msg.titles)
		return m, nil

	case reviewsMsg:
		if msg.err != nil {
			m.reviewsModel.SetError(msg.err)
			return m, nil
		}
		m.reviewsModel.SetReviews(msg.reviews)
		return m, nil

	case postsMsg:
		if msg.err != nil {
			m.communityModel.SetError(msg.err)
			return m, nil
		}
		m.communityModel.SetPosts(msg.posts)
		return m, nil

	case latestReviewMsg:
		if msg.err == nil {
			m.homeModel.SetLatestReview(msg.review)
			if m.lastReviewID != 0 && msg.review.ID != m.lastReviewID && m.data.Preferences().ReviewNotif {
				if err := m.notify("New review: " + msg.review.Title); err != nil {
					m.logger.Debug("tray notification skipped", zap.Error(err))
				}
			}
			m.lastReviewID = msg.review.ID
		}
		return m, nil

	case latestPostMsg:
		if msg.err == nil {
			m.homeModel.SetLatestPost(msg.post)
		}
		return m, nil

	case topFilmsMsg:
		if msg.err == nil {
			m.homeModel.SetTopFilms(msg.films)
		}
		return m, nil

	case activityMsg:
		if msg.err != nil {
			m.friendsModel.SetError(msg.err)
			return m, nil
		}
		m.friendsModel.SetActivity(msg.activity)
		return m, nil

	case requestsMsg:
		if msg.err == nil {
			m.friendsModel.SetRequests(msg.ids)
		}
		return m, nil

	case messagesMsg:
		if msg.friendID != m.chatModel.Contact() {
			return m, nil
		}
		if msg.err != nil {
			m.chatModel.SetError(msg.err)
			return m, nil
		}
		m.chatModel.SetMessages(msg.messages)
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.logger.Warn("backend action failed", zap.Error(msg.err))
			return m, nil
		}
		return m, m.refreshTab(msg.refresh)

	case daily.GuessMsg:
		return m.handleGuess(msg.Guess)

	case daily.RateMsg:
		return m.handleRate(msg.Score)

	case daily.ToggleWatchlistMsg:
		return m.handleToggleWatchlist()

	case daily.ShareMsg:
		rating, _ := m.data.Rating(m.sess.Puzzle().Title, m.sess.Puzzle().Poster)
		m.dailyModel.SetShareText(share.Message(m.sess.State() == session.StateWon, rating, m.data.Streak()))
		return m, nil

	case watchlist.RemoveMsg:
		if err := m.data.RemoveWatchlist(msg.Item); err != nil {
			m.logger.Warn("watchlist remove failed", zap.Error(err))
		}
		m.watchlistModel.SetFilms(m.data.Watchlist())
		if msg.Item.Title == m.sess.Puzzle().Title {
			m.dailyModel.SetWatchlisted(false)
		}
		return m, nil

	case community.LikeMsg:
		return m, m.reactToPost(msg.PostID, msg.Liked)

	case community.SubmitPostMsg:
		return m, m.submitPost(msg.Title, msg.Content)

	case community.SubmitCommentMsg:
		return m, m.submitComment(msg.PostID, msg.Content)

	case friends.AddFriendMsg:
		return m.handleAddFriend(msg.FriendID)

	case friends.AcceptRequestMsg:
		return m.handleAcceptRequest(msg.RequesterID)

	case friends.OpenChatMsg:
		m.chatModel.SetContact(msg.FriendID, msg.Name)
		m.tab = TabChat
		return m, m.fetchMessages(msg.FriendID)

	case chat.SendMsg:
		return m, m.sendChatMessage(msg.FriendID, msg.Text)

	case profile.RenameMsg:
		return m.handleRename(msg.Name)

	case prefs.SavedMsg:
		return m.handlePrefsSaved(msg.Prefs)
	}

	return m.updateActiveTab(msg)
}

// handleGlobalKey owns quit, help and tab switching. Keys fall through
// to the active component while one of its forms is composing, except
// quit, which always works.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit, true
	}

	if m.composing() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	case key.Matches(msg, m.keys.Tab):
		m.tab = (m.tab + 1) % tabCount
		return m, m.enteredTab(), true
	case key.Matches(msg, m.keys.ShiftTab):
		m.tab = (m.tab - 1 + tabCount) % tabCount
		return m, m.enteredTab(), true
	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.startRound(), m.refreshTab(m.tab)), true
	}
	return m, nil, false
}

// composing reports whether the active tab has a form or text input
// that should see every keystroke.
func (m Model) composing() bool {
	switch m.tab {
	case TabCommunity:
		return m.communityModel.Composing()
	case TabFriends:
		return m.friendsModel.Composing()
	case TabProfile:
		return m.profileModel.Composing()
	}
	return false
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	remaining := dayclock.UntilMidnight(time.Now())
	m.dailyModel.SetCountdown(remaining)
	m.homeModel.SetCountdown(remaining)

	cmds := []tea.Cmd{tick()}
	if dayID, changed := m.watcher.Check(); changed {
		cmds = append(cmds, m.rollover(dayID), m.fetchLatestReview())
		if m.data.Preferences().DailyNotif {
			if err := m.notify("A new film is ready to guess."); err != nil {
				m.logger.Debug("tray notification skipped", zap.Error(err))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// syncRound pushes the session's state into every component that shows
// part of it.
func (m *Model) syncRound() {
	streak := m.data.Streak()
	m.dailyModel.SetRound(m.sess, streak)
	m.homeModel.SetRound(m.sess.State(), m.sess.Attempt())
	m.homeModel.SetStreak(streak)
	m.profileModel.SetStreak(streak)

	puzzle := m.sess.Puzzle()
	if puzzle.Title != "" {
		rating, _ := m.data.Rating(puzzle.Title, puzzle.Poster)
		m.dailyModel.SetRating(rating)
		m.dailyModel.SetWatchlisted(m.data.Watchlisted(models.WatchlistEntry(puzzle)))
	}
}

func (m Model) handleGuess(guess string) (tea.Model, tea.Cmd) {
	if _, err := m.sess.SubmitGuess(guess); err != nil {
		m.logger.Warn("guess rejected", zap.Error(err))
	}
	m.syncRound()
	return m, nil
}

func (m Model) handleRate(score int) (tea.Model, tea.Cmd) {
	sub, err := m.sess.Rate(score)
	if err != nil {
		m.logger.Warn("rating rejected", zap.Error(err))
		return m, nil
	}

	m.dailyModel.SetRating(score)
	m.profileModel.SetRatings(m.data.Ratings())

	preferences := m.data.Preferences()
	if preferences.ShareRatings {
		m.api.ShareRating(sub, preferences.ShareWithFriends)
	}
	return m, nil
}

func (m Model) handleToggleWatchlist() (tea.Model, tea.Cmd) {
	puzzle := m.sess.Puzzle()
	if puzzle.Title == "" {
		return m, nil
	}

	on, err := m.data.ToggleWatchlist(models.WatchlistEntry(puzzle))
	if err != nil {
		m.logger.Warn("watchlist toggle failed", zap.Error(err))
		return m, nil
	}
	m.dailyModel.SetWatchlisted(on)
	m.watchlistModel.SetFilms(m.data.Watchlist())
	return m, nil
}

func (m Model) reactToPost(postID int, liked bool) tea.Cmd {
	client := m.api
	userID := m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var err error
		if liked {
			err = client.DislikePost(ctx, postID, userID)
		} else {
			err = client.LikePost(ctx, postID, userID)
		}
		return actionDoneMsg{refresh: TabCommunity, err: err}
	}
}

func (m Model) submitPost(title, content string) tea.Cmd {
	client := m.api
	post := api.NewPost{
		CreatorID:   m.userID,
		CreatorName: m.data.UserName(),
		Title:       title,
		Content:     content,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return actionDoneMsg{refresh: TabCommunity, err: client.SubmitPost(ctx, post)}
	}
}

func (m Model) submitComment(postID int, content string) tea.Cmd {
	client := m.api
	comment := api.NewComment{
		PostID:      postID,
		CreatorID:   m.userID,
		CreatorName: m.data.UserName(),
		Content:     content,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return actionDoneMsg{refresh: TabCommunity, err: client.SubmitComment(ctx, comment)}
	}
}

func (m Model) handleAddFriend(friendID string) (tea.Model, tea.Cmd) {
	client := m.api
	userID := m.userID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return actionDoneMsg{refresh: TabFriends, err: client.SendFriendRequest(ctx, userID, friendID)}
	}
}

func (m Model) handleAcceptRequest(requesterID string) (tea.Model, tea.Cmd) {
	ids := append(m.data.FriendIDs(), requesterID)
	if err := m.data.SetFriendIDs(ids); err != nil {
		m.logger.Warn("friend list save failed", zap.Error(err))
		return m, nil
	}

	client := m.api
	userID := m.userID
	accept := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return actionDoneMsg{refresh: TabFriends, err: client.AcceptFriendRequest(ctx, userID, requesterID)}
	}
	return m, tea.Batch(accept, m.fetchActivity(), m.fetchRequests())
}

func (m Model) sendChatMessage(friendID, text string) tea.Cmd {
	client := m.api
	msg := models.Message{
		SenderID:   m.userID,
		ReceiverID: friendID,
		Text:       text,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	fetch := m.fetchMessages(friendID)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		if err := client.SendMessage(ctx, msg); err != nil {
			return actionDoneMsg{refresh: TabChat, err: err}
		}
		return fetch()
	}
}

func (m Model) handleRename(name string) (tea.Model, tea.Cmd) {
	if err := m.data.SetUserName(name); err != nil {
		m.logger.Warn("name save failed", zap.Error(err))
		return m, nil
	}
	m.homeModel.SetUserName(name)

	since := ""
	if opened, ok := m.data.AppOpenedDate(); ok {
		since = opened.Format("2006-01-02")
	}
	info := models.UserInfo{
		UserID:    m.userID,
		UserName:  name,
		UserSince: since,
		Ratings:   m.data.Ratings(),
	}
	client := m.api
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return actionDoneMsg{refresh: TabProfile, err: client.UploadProfile(ctx, info)}
	}
}

func (m Model) handlePrefsSaved(preferences models.Preferences) (tea.Model, tea.Cmd) {
	if err := m.data.SavePreferences(preferences); err != nil {
		m.logger.Warn("preferences save failed", zap.Error(err))
		return m, nil
	}
	m.styles = theme.New(theme.PaletteFor(preferences.SelectedTheme))

	if !preferences.DailyNotif && !preferences.ReviewNotif {
		client := m.api
		userID := m.userID
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			return actionDoneMsg{err: client.RemovePushToken(ctx, userID)}
		}
	}
	return m, nil
}

// refreshTab refetches whatever backs the given tab.
func (m Model) refreshTab(tab Tab) tea.Cmd {
	switch tab {
	case TabHome:
		return tea.Batch(m.fetchLatestReview(), m.fetchLatestPost(), m.fetchTopFilms())
	case TabDaily:
		return m.fetchTitles()
	case TabReviews:
		return m.fetchReviews()
	case TabCommunity:
		return m.fetchPosts()
	case TabFriends:
		return tea.Batch(m.fetchActivity(), m.fetchRequests())
	case TabChat:
		if contact := m.chatModel.Contact(); contact != "" {
			return m.fetchMessages(contact)
		}
	}
	return nil
}

// enteredTab runs when the player switches to a tab.
func (m *Model) enteredTab() tea.Cmd {
	switch m.tab {
	case TabWatchlist:
		m.watchlistModel.SetFilms(m.data.Watchlist())
	case TabProfile:
		m.profileModel.SetRatings(m.data.Ratings())
	case TabPrefs:
		m.prefsModel.SetPreferences(m.data.Preferences())
		return m.prefsModel.Init()
	}
	return nil
}

// updateActiveTab routes a message to the active tab's component.
func (m Model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.tab {
	case TabDaily:
		m.dailyModel, cmd = m.dailyModel.Update(msg)
	case TabWatchlist:
		m.watchlistModel, cmd = m.watchlistModel.Update(msg)
	case TabReviews:
		m.reviewsModel, cmd = m.reviewsModel.Update(msg)
	case TabCommunity:
		m.communityModel, cmd = m.communityModel.Update(msg)
	case TabFriends:
		m.friendsModel, cmd = m.friendsModel.Update(msg)
	case TabChat:
		m.chatModel, cmd = m.chatModel.Update(msg)
	case TabProfile:
		m.profileModel, cmd = m.profileModel.Update(msg)
	case TabPrefs:
		m.prefsModel, cmd = m.prefsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) setSizes() {
	contentWidth := m.width - 4
	contentHeight := m.height - 6
	if contentWidth < 20 {
		contentWidth = 20
	}
	if contentHeight < 8 {
		contentHeight = 8
	}
	m.dailyModel.SetSize(contentWidth, contentHeight)
	m.watchlistModel.SetSize(contentWidth, contentHeight)
	m.reviewsModel.SetSize(contentWidth, contentHeight)
	m.communityModel.SetSize(contentWidth, contentHeight)
	m.friendsModel.SetSize(contentWidth, contentHeight)
	m.chatModel.SetSize(contentWidth, contentHeight)
}
