// Package tui implements the terminal UI: one bubbletea model per screen,
// with screen transitions returning the next screen's model. Screens talk
// to the backend through api.Client and to the session through
// services.SessionManager; all I/O runs inside tea.Cmd closures so the
// update loop never blocks.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkorotkov/sparkmatch/internal/client/api"
	"github.com/mkorotkov/sparkmatch/internal/client/config"
	"github.com/mkorotkov/sparkmatch/internal/client/models"
	"github.com/mkorotkov/sparkmatch/internal/client/services"
	"github.com/mkorotkov/sparkmatch/internal/logging"
)

// Deps bundles what every screen needs. One instance is created by the
// composition root and shared by reference; no globals.
type Deps struct {
	Session services.SessionManager
	API     api.Client
	Config  *config.Config
	Log     logging.Logger
}

// currentUserID returns the id of the authenticated user, or 0 when the
// session is anonymous. Screens that require authentication are only
// reachable while a user is present.
func (d *Deps) currentUserID() int64 {
	if u := d.Session.CurrentUser(); u != nil {
		return u.ID
	}
	return 0
}

// ---- commands ----

func (d *Deps) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		d.Session.Restore(context.Background())
		return restoredMsg{}
	}
}

func (d *Deps) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		if err := d.Session.Login(context.Background(), email, password); err != nil {
			return authFailedMsg{err: err}
		}
		return authOKMsg{}
	}
}

func (d *Deps) signupCmd(data models.SignupData) tea.Cmd {
	return func() tea.Msg {
		if err := d.Session.Signup(context.Background(), data); err != nil {
			return authFailedMsg{err: err}
		}
		return authOKMsg{}
	}
}

func (d *Deps) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		d.Session.Logout(context.Background())
		return loggedOutMsg{}
	}
}

func (d *Deps) discoverCmd() tea.Cmd {
	userID := d.currentUserID()
	return func() tea.Msg {
		users, err := d.API.DiscoverUsers(context.Background(), userID)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return usersLoadedMsg{users: users}
	}
}

func (d *Deps) conversationsCmd() tea.Cmd {
	userID := d.currentUserID()
	return func() tea.Msg {
		convs, err := d.API.GetConversations(context.Background(), userID)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return conversationsLoadedMsg{conversations: convs}
	}
}

func (d *Deps) conversationCmd(otherID int64) tea.Cmd {
	userID := d.currentUserID()
	return func() tea.Msg {
		msgs, err := d.API.GetConversation(context.Background(), userID, otherID)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		// the server returns newest first; reverse once to render oldest first
		for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
			msgs[i], msgs[j] = msgs[j], msgs[i]
		}
		return messagesLoadedMsg{messages: msgs}
	}
}

func (d *Deps) sendMessageCmd(receiverID int64, content string) tea.Cmd {
	userID := d.currentUserID()
	return func() tea.Msg {
		m, err := d.API.SendMessage(context.Background(), userID, receiverID, content)
		if err != nil {
			return sendFailedMsg{err: err, draft: content}
		}
		return messageSentMsg{message: *m}
	}
}

// markReadCmd marks the given messages read, best effort. Failures are
// logged and otherwise ignored; the next conversations fetch corrects the
// counters anyway.
func (d *Deps) markReadCmd(ids []int64) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		for _, id := range ids {
			if err := d.API.MarkAsRead(ctx, id); err != nil {
				d.Log.Warn(ctx, "mark as read failed", "message_id", id, "error", err)
			}
		}
		return nil
	}
}

func (d *Deps) unreadCountCmd() tea.Cmd {
	userID := d.currentUserID()
	return func() tea.Msg {
		n, err := d.API.UnreadCount(context.Background(), userID)
		if err != nil {
			// transient; keep the previous counter
			return nil
		}
		return unreadCountMsg{count: n}
	}
}

// saveProfileCmd pushes the edited fields to the backend and, on success,
// replaces the session's user record with what the server returned.
func (d *Deps) saveProfileCmd(upd models.ProfileUpdate) tea.Cmd {
	userID := d.currentUserID()
	return func() tea.Msg {
		ctx := context.Background()
		u, err := d.API.UpdateProfile(ctx, userID, upd)
		if err != nil {
			return saveFailedMsg{err: err}
		}
		d.Session.UpdateUser(ctx, *u)
		return profileSavedMsg{}
	}
}
