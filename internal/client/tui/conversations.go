package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

// ConversationsModel lists the user's conversations, most recent activity
// as the backend ordered them, with unread markers.
type ConversationsModel struct {
	deps          *Deps
	conversations []models.Conversation
	cursor        int
	loading       bool
	spinner       spinner.Model
	unread        int
	errText       string
}

func InitialConversationsModel(deps *Deps, unread int) ConversationsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return ConversationsModel{deps: deps, loading: true, spinner: s, unread: unread}
}

func (m ConversationsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.deps.conversationsCmd(), unreadTick(m.deps.Config.UnreadPollInterval))
}

func (m ConversationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(m.conversations)-1 {
				m.cursor++
			}

		case "enter":
			if m.cursor < len(m.conversations) {
				other := m.conversations[m.cursor].OtherUser
				next := InitialChatModel(m.deps, other)
				return next, next.Init()
			}

		case "r":
			m.loading = true
			m.errText = ""
			return m, tea.Batch(m.spinner.Tick, m.deps.conversationsCmd())

		case "d":
			next := InitialDiscoverModel(m.deps)
			return next, next.Init()

		case "p":
			return InitialProfileModel(m.deps, m.unread), nil
		}

	case conversationsLoadedMsg:
		m.loading = false
		m.conversations = msg.conversations
		if m.cursor >= len(m.conversations) {
			m.cursor = 0
		}

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

func (m ConversationsModel) line(i int, c models.Conversation) string {
	preview := fmt.Sprintf("%s: %s · %s",
		c.OtherUser.Name,
		truncate(c.LastMessage.Content, 40),
		formatTime(c.LastMessage.Timestamp))

	if !c.LastMessage.IsRead {
		preview = unreadStyle.Render("● ") + preview
	} else {
		preview = "  " + preview
	}
	if i == m.cursor {
		return selectedStyle.Render("> " + preview)
	}
	return "  " + preview
}

func (m ConversationsModel) View() string {
	s := header("Messages", m.unread) + "\n\n"

	switch {
	case m.loading:
		s += " " + m.spinner.View() + " loading conversations...\n"

	case m.errText != "":
		s += errStyle.Render("failed to load conversations: "+m.errText) + "\n"
		s += hintStyle.Render("r: retry") + "\n"

	case len(m.conversations) == 0:
		s += "No conversations yet. Go like somebody!\n"

	default:
		for i, c := range m.conversations {
			s += m.line(i, c) + "\n"
		}
	}

	s += "\n" + hintStyle.Render("↑/↓: select · enter: open · r: reload · d: discover · p: profile · q: quit") + "\n"
	return s
}
