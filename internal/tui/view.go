package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	tabs := make([]string, 0, int(tabCount))
	for i := Tab(0); i < tabCount; i++ {
		style := m.styles.InactiveTab
		if i == m.tab {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(tabNames[i]))
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.tab {
	case TabHome:
		body = m.homeModel.View()
	case TabDaily:
		body = m.dailyModel.View()
	case TabWatchlist:
		body = m.watchlistModel.View()
	case TabReviews:
		body = m.reviewsModel.View()
	case TabCommunity:
		body = m.communityModel.View()
	case TabFriends:
		body = m.friendsModel.View()
	case TabChat:
		body = m.chatModel.View()
	case TabProfile:
		body = m.profileModel.View()
	case TabPrefs:
		body = m.prefsModel.View()
	}

	var b strings.Builder
	b.WriteString(tabBar)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return m.styles.Doc.Render(b.String())
}
