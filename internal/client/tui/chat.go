package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

// ChatModel is a single conversation: message history in a viewport,
// composer below. Messages render oldest first, latest at the bottom.
type ChatModel struct {
	deps     *Deps
	other    models.ConversationUser
	myID     int64
	messages []models.Message
	viewport viewport.Model
	textbox  textarea.Model
	loading  bool
	infoText string
}

func InitialChatModel(deps *Deps, other models.ConversationUser) ChatModel {
	m := ChatModel{deps: deps, other: other, myID: deps.currentUserID(), loading: true}

	m.viewport = viewport.New(80, 12)

	m.textbox = textarea.New()
	m.textbox.Placeholder = "Send a message..."
	m.textbox.Prompt = "┃ "
	m.textbox.CharLimit = models.MessageMaxLength
	m.textbox.ShowLineNumbers = false
	m.textbox.SetHeight(3)
	m.textbox.SetWidth(80)
	m.textbox.FocusedStyle.CursorLine = lipgloss.NewStyle()
	m.textbox.Focus()

	return m
}

func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.deps.conversationCmd(m.other.ID))
}

func (m *ChatModel) renderMessages() {
	var b strings.Builder
	for _, msg := range m.messages {
		style := otherStyle
		who := m.other.Name
		if msg.SenderID == m.myID {
			style = meStyle
			who = "me"
		}
		b.WriteString(style.Render(who+" · "+formatTime(msg.Timestamp)) + "\n")
		b.WriteString(msg.Content + "\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// incomingUnreadIDs returns ids of messages addressed to me that the
// counterparty's sends have not yet been marked read.
func (m ChatModel) incomingUnreadIDs() []int64 {
	var ids []int64
	for _, msg := range m.messages {
		if msg.ReceiverID == m.myID && !msg.IsRead {
			ids = append(ids, msg.ID)
		}
	}
	return ids
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 2)
	m.viewport, cmds[0] = m.viewport.Update(msg)
	m.textbox, cmds[1] = m.textbox.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			next := InitialConversationsModel(m.deps, 0)
			return next, next.Init()

		case "ctrl+s":
			content := strings.TrimSpace(m.textbox.Value())
			if err := models.ValidateMessageContent(content); err != nil {
				if content != "" {
					m.infoText = err.Error()
				}
				break
			}
			m.textbox.Reset()
			m.infoText = ""
			return m, m.deps.sendMessageCmd(m.other.ID, content)
		}

	case messagesLoadedMsg:
		m.loading = false
		m.messages = msg.messages
		m.renderMessages()
		// opening the conversation reads it
		return m, m.deps.markReadCmd(m.incomingUnreadIDs())

	case messageSentMsg:
		m.messages = append(m.messages, msg.message)
		m.renderMessages()

	case sendFailedMsg:
		// put the draft back so nothing typed is lost
		m.textbox.SetValue(msg.draft)
		m.infoText = "send failed: " + msg.err.Error()

	case loadFailedMsg:
		m.loading = false
		m.infoText = "failed to load messages: " + msg.err.Error()
	}

	return m, tea.Batch(cmds...)
}

func (m ChatModel) View() string {
	s := header("Chat with "+m.other.Name, 0) + "\n"
	s += "─────────────────────────────────────────\n"

	if m.loading {
		s += "loading messages...\n"
	} else {
		s += m.viewport.View() + "\n"
	}

	s += "─────────────────────────────────────────\n"
	s += m.textbox.View() + "\n"

	if m.infoText != "" {
		s += errStyle.Render(m.infoText) + "\n"
	}

	s += hintStyle.Render("ctrl+s: send · esc: back · ctrl+c: quit") + "\n"
	return s
}
