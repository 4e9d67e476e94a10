package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

// Messages produced by the command closures in deps.go. Each screen handles
// the subset it cares about and ignores the rest.

type restoredMsg struct{}

type authOKMsg struct{}

type authFailedMsg struct{ err error }

type loggedOutMsg struct{}

type usersLoadedMsg struct{ users []models.User }

type conversationsLoadedMsg struct{ conversations []models.Conversation }

type messagesLoadedMsg struct{ messages []models.Message }

type messageSentMsg struct{ message models.Message }

type sendFailedMsg struct {
	err   error
	draft string
}

type loadFailedMsg struct{ err error }

type unreadCountMsg struct{ count int }

type unreadTickMsg struct{}

type profileSavedMsg struct{}

type saveFailedMsg struct{ err error }

// unreadTick schedules the next unread-counter refresh. Every authenticated
// screen re-arms it from its Update so the poll survives screen changes.
func unreadTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return unreadTickMsg{}
	})
}
