package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

// DiscoverModel is the swipe screen: one candidate card at a time,
// like or pass advances to the next. The backend decides the feed;
// nothing is cached across restarts.
type DiscoverModel struct {
	deps    *Deps
	users   []models.User
	idx     int
	loading bool
	spinner spinner.Model
	unread  int
	errText string
}

func InitialDiscoverModel(deps *Deps) DiscoverModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return DiscoverModel{deps: deps, loading: true, spinner: s}
}

func (m DiscoverModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.deps.discoverCmd(),
		m.deps.unreadCountCmd(),
		unreadTick(m.deps.Config.UnreadPollInterval),
	)
}

// swipe records the decision and moves to the next card. The current
// backend keeps no like/pass state, so recording is a debug log only.
func (m *DiscoverModel) swipe(action string) {
	if m.idx < len(m.users) {
		m.deps.Log.Debug(context.Background(), "swipe", "action", action, "user_id", m.users[m.idx].ID)
		m.idx++
	}
}

func (m DiscoverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "left", "h":
			m.swipe("pass")

		case "right", "l":
			m.swipe("like")

		case "r":
			m.loading = true
			m.idx = 0
			m.errText = ""
			return m, tea.Batch(m.spinner.Tick, m.deps.discoverCmd())

		case "m":
			next := InitialConversationsModel(m.deps, m.unread)
			return next, next.Init()

		case "p":
			return InitialProfileModel(m.deps, m.unread), nil
		}

	case usersLoadedMsg:
		m.loading = false
		m.users = msg.users
		m.idx = 0

	case loadFailedMsg:
		m.loading = false
		m.errText = msg.err.Error()

	case unreadCountMsg:
		m.unread = msg.count

	case unreadTickMsg:
		return m, tea.Batch(m.deps.unreadCountCmd(), unreadTick(m.deps.Config.UnreadPollInterval))
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m DiscoverModel) card(u models.User) string {
	body := cardNameStyle.Render(fmt.Sprintf("%s, %d", u.Name, u.Age))
	if u.Bio != "" {
		body += "\n\n" + cardBioStyle.Render(truncate(u.Bio, 160))
	}
	return cardStyle.Render(body)
}

func (m DiscoverModel) View() string {
	s := header("Discover", m.unread) + "\n\n"

	switch {
	case m.loading:
		s += " " + m.spinner.View() + " finding amazing people...\n"

	case m.errText != "":
		s += errStyle.Render("failed to load profiles: "+m.errText) + "\n"
		s += hintStyle.Render("r: retry") + "\n"

	case m.idx >= len(m.users):
		s += "No more profiles. You have seen everyone available!\n\n"
		s += hintStyle.Render("r: reload") + "\n"

	default:
		s += m.card(m.users[m.idx]) + "\n"
		s += hintStyle.Render(fmt.Sprintf("profile %d of %d", m.idx+1, len(m.users))) + "\n"
	}

	s += "\n" + hintStyle.Render("←: pass · →: like · r: reload · m: messages · p: profile · q: quit") + "\n"
	return s
}

// header renders the shared top line for the authenticated screens,
// with the unread badge when there is something unread.
func header(screen string, unread int) string {
	h := titleStyle.Render("Sparkmatch") + "  " + screen
	if unread > 0 {
		h += "  " + unreadStyle.Render(fmt.Sprintf("(%d unread)", unread))
	}
	return h
}
