package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bpstudios/widescreen/internal/api"
	"github.com/bpstudios/widescreen/internal/dayclock"
	"github.com/bpstudios/widescreen/internal/models"
	"github.com/bpstudios/widescreen/internal/notifier"
	"github.com/bpstudios/widescreen/internal/session"
	"github.com/bpstudios/widescreen/internal/storage"
	"github.com/bpstudios/widescreen/internal/tui/components/chat"
	"github.com/bpstudios/widescreen/internal/tui/components/community"
	"github.com/bpstudios/widescreen/internal/tui/components/daily"
	"github.com/bpstudios/widescreen/internal/tui/components/friends"
	"github.com/bpstudios/widescreen/internal/tui/components/home"
	"github.com/bpstudios/widescreen/internal/tui/components/prefs"
	"github.com/bpstudios/widescreen/internal/tui/components/profile"
	"github.com/bpstudios/widescreen/internal/tui/components/reviews"
	"github.com/bpstudios/widescreen/internal/tui/components/watchlist"
	"github.com/bpstudios/widescreen/internal/tui/theme"
)

type Tab int

const (
	TabHome Tab = iota
	TabDaily
	TabWatchlist
	TabReviews
	TabCommunity
	TabFriends
	TabChat
	TabProfile
	TabPrefs
	tabCount
)

var tabNames = [tabCount]string{
	"Home", "Daily", "Watchlist", "Reviews", "Community", "Friends", "Chat", "Profile", "Preferences",
}

// Messages produced by the async fetch commands. Each carries its own
// error so a failed fetch degrades one tab instead of the program.
type (
	tickMsg        time.Time
	roundLoadedMsg struct{ err error }

	titlesMsg struct {
		titles []string
		err    error
	}
	reviewsMsg struct {
		reviews []models.Review
		err     error
	}
	postsMsg struct {
		posts []models.Post
		err   error
	}
	latestReviewMsg struct {
		review models.Review
		err    error
	}
	latestPostMsg struct {
		post models.Post
		err  error
	}
	topFilmsMsg struct {
		films []models.TopFilm
		err   error
	}
	activityMsg struct {
		activity []models.FriendActivity
		err      error
	}
	requestsMsg struct {
		ids []string
		err error
	}
	messagesMsg struct {
		friendID string
		messages []models.Message
		err      error
	}
	actionDoneMsg struct {
		refresh Tab
		err     error
	}
)

type Model struct {
	data   *storage.Data
	api    *api.Client
	logger *zap.Logger

	sess    *session.Session
	watcher *dayclock.Watcher

	// notify posts a desktop notification. Swappable in tests.
	notify       func(text string) error
	lastReviewID int

	keys   KeyMap
	help   help.Model
	styles theme.Styles
	tab    Tab

	homeModel      home.Model
	dailyModel     daily.Model
	watchlistModel watchlist.Model
	reviewsModel   reviews.Model
	communityModel community.Model
	friendsModel   friends.Model
	chatModel      chat.Model
	profileModel   profile.Model
	prefsModel     prefs.Model

	userID   string
	quitting bool
	width    int
	height   int
}

func NewModel(data *storage.Data, client *api.Client, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	preferences := data.Preferences()
	styles := theme.New(theme.PaletteFor(preferences.SelectedTheme))

	userID, _ := data.UserID()
	userName := data.UserName()

	hm := home.New(styles)
	hm.SetUserName(userName)
	hm.SetStreak(data.Streak())

	pm := profile.New(styles)
	since := ""
	if opened, ok := data.AppOpenedDate(); ok {
		since = opened.Format("2006-01-02")
	}
	pm.SetIdentity(userID, userName, since)
	pm.SetStreak(data.Streak())
	pm.SetRatings(data.Ratings())

	m := Model{
		data:           data,
		api:            client,
		logger:         logger,
		sess:           session.New(data, client, nil),
		watcher:        dayclock.NewWatcher(nil),
		notify:         notifier.New().Notify,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		styles:         styles,
		tab:            TabDaily,
		homeModel:      hm,
		dailyModel:     daily.New(styles),
		watchlistModel: watchlist.New(data.Watchlist(), 0, 0),
		reviewsModel:   reviews.New(styles, 0, 0),
		communityModel: community.New(styles, userID, 0, 0),
		friendsModel:   friends.New(styles, 0, 0),
		chatModel:      chat.New(styles, userID),
		profileModel:   pm,
		prefsModel:     prefs.New(styles, preferences),
		userID:         userID,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dailyModel.Init(),
		m.prefsModel.Init(),
		m.startRound(),
		m.fetchTitles(),
		m.fetchReviews(),
		m.fetchPosts(),
		m.fetchLatestReview(),
		m.fetchLatestPost(),
		m.fetchTopFilms(),
		m.fetchActivity(),
		m.fetchRequests(),
		tick(),
	)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

const fetchTimeout = 15 * time.Second

func (m Model) startRound() tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return roundLoadedMsg{err: sess.Start(ctx)}
	}
}

func (m Model) rollover(dayID int) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return roundLoadedMsg{err: sess.Rollover(ctx, dayID)}
	}
}

func (m Model) fetchTitles() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		titles, err := client.AllTitles(ctx)
		return titlesMsg{titles: titles, err: err}
	}
}

func (m Model) fetchReviews() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		list, err := client.Reviews(ctx)
		return reviewsMsg{reviews: list, err: err}
	}
}

func (m Model) fetchPosts() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		list, err := client.Posts(ctx)
		return postsMsg{posts: list, err: err}
	}
}

func (m Model) fetchLatestReview() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		review, err := client.LatestReview(ctx)
		return latestReviewMsg{review: review, err: err}
	}
}

func (m Model) fetchLatestPost() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		post, err := client.LatestPost(ctx)
		return latestPostMsg{post: post, err: err}
	}
}

func (m Model) fetchTopFilms() tea.Cmd {
	client := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		films, err := client.TopFilms(ctx)
		return topFilmsMsg{films: films, err: err}
	}
}

func (m Model) fetchActivity() tea.Cmd {
	client := m.api
	ids := m.data.FriendIDs()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		activity, err := client.FriendActivity(ctx, ids)
		return activityMsg{activity: activity, err: err}
	}
}

func (m Model) fetchRequests() tea.Cmd {
	client := m.api
	userID := m.userID
	ids := m.data.FriendIDs()
	if userID == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		requests, err := client.FriendRequests(ctx, userID, ids)
		return requestsMsg{ids: requests, err: err}
	}
}

func (m Model) fetchMessages(friendID string) tea.Cmd {
	client := m.api
	userID := m.userID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		messages, err := client.Messages(ctx, userID, friendID)
		return messagesMsg{friendID: friendID, messages: messages, err: err}
	}
}
