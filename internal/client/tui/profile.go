package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ProfileModel shows the current user's own profile.
type ProfileModel struct {
	deps   *Deps
	unread int
	saved  bool
}

func InitialProfileModel(deps *Deps, unread int) ProfileModel {
	return ProfileModel{deps: deps, unread: unread}
}

func (m ProfileModel) Init() tea.Cmd {
	return nil
}

func (m ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "e":
			next := InitialEditProfileModel(m.deps)
			return next, next.Init()

		case "d":
			next := InitialDiscoverModel(m.deps)
			return next, next.Init()

		case "m":
			next := InitialConversationsModel(m.deps, m.unread)
			return next, next.Init()

		case "ctrl+l":
			return m, m.deps.logoutCmd()
		}

	case loggedOutMsg:
		return InitialLoginModel(m.deps), nil

	case unreadCountMsg:
		m.unread = msg.count

	case unreadTickMsg:
		return m, tea.Batch(m.deps.unreadCountCmd(), unreadTick(m.deps.Config.UnreadPollInterval))
	}

	return m, nil
}

func (m ProfileModel) View() string {
	u := m.deps.Session.CurrentUser()
	if u == nil {
		// logout already cleared the session; the next Update swaps screens
		return "signed out\n"
	}

	s := header("Profile", m.unread) + "\n\n"
	s += cardNameStyle.Render(fmt.Sprintf("%s, %d", u.Name, u.Age)) + "\n"
	s += u.Email + "\n"
	if u.Bio != "" {
		s += "\n" + cardBioStyle.Render(u.Bio) + "\n"
	}
	if u.ProfilePicture != "" {
		s += "\n" + hintStyle.Render("photo: "+u.ProfilePicture) + "\n"
	}
	if m.saved {
		s += "\n" + okStyle.Render("profile saved") + "\n"
	}

	s += "\n" + hintStyle.Render("e: edit · d: discover · m: messages · ctrl+l: sign out · q: quit") + "\n"
	return s
}
