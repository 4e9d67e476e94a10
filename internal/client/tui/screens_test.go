package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/mkorotkov/sparkmatch/internal/client/api"
	"github.com/mkorotkov/sparkmatch/internal/client/config"
	"github.com/mkorotkov/sparkmatch/internal/client/models"
	"github.com/mkorotkov/sparkmatch/internal/client/services"
	"github.com/mkorotkov/sparkmatch/internal/logging"
)

// ---- fakes ----

type fakeSession struct {
	user     *models.User
	loading  bool
	loginErr error
}

func (f *fakeSession) Restore(ctx context.Context) { f.loading = false }
func (f *fakeSession) Login(ctx context.Context, email, password string) error {
	return f.loginErr
}
func (f *fakeSession) Signup(ctx context.Context, data models.SignupData) error {
	return f.loginErr
}
func (f *fakeSession) Logout(ctx context.Context)                      { f.user = nil }
func (f *fakeSession) UpdateUser(ctx context.Context, u models.User)   { f.user = &u }
func (f *fakeSession) CurrentUser() *models.User                       { return f.user }
func (f *fakeSession) Loading() bool                                   { return f.loading }
func (f *fakeSession) State() services.SessionState {
	switch {
	case f.loading:
		return services.StateLoading
	case f.user != nil:
		return services.StateAuthenticated
	default:
		return services.StateAnonymous
	}
}

type fakeAPI struct {
	api.Client

	conversation []models.Message
	convErr      error
	markedRead   []int64
}

func (f *fakeAPI) GetConversation(ctx context.Context, a, b int64) ([]models.Message, error) {
	return f.conversation, f.convErr
}

func (f *fakeAPI) MarkAsRead(ctx context.Context, id int64) error {
	f.markedRead = append(f.markedRead, id)
	return nil
}

func testDeps(user *models.User, apiClient api.Client) *Deps {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &Deps{
		Session: &fakeSession{user: user},
		API:     apiClient,
		Config:  cfg,
		Log:     logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func keyMsg(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

var me = models.User{ID: 1, Email: "a@b.com", Name: "A", Age: 20}

// ---- tests ----

func TestRootModel_RoutesAfterRestore(t *testing.T) {
	t.Run("anonymous goes to login", func(t *testing.T) {
		m := InitialRootModel(testDeps(nil, &fakeAPI{}))
		next, _ := m.Update(restoredMsg{})
		require.IsType(t, LoginModel{}, next)
	})

	t.Run("restored session goes to discover", func(t *testing.T) {
		u := me
		m := InitialRootModel(testDeps(&u, &fakeAPI{}))
		next, _ := m.Update(restoredMsg{})
		require.IsType(t, DiscoverModel{}, next)
	})
}

func TestLoginModel_EmptyFieldsRejectedLocally(t *testing.T) {
	m := InitialLoginModel(testDeps(nil, &fakeAPI{}))

	next, cmd := m.Update(keyMsg("enter"))
	lm := next.(LoginModel)

	require.Nil(t, cmd)
	require.Contains(t, lm.View(), "required")
}

func TestLoginModel_ShowsServerMessage(t *testing.T) {
	m := InitialLoginModel(testDeps(nil, &fakeAPI{}))

	next, _ := m.Update(authFailedMsg{err: api.ServerError("Invalid credentials")})
	lm := next.(LoginModel)

	require.Contains(t, lm.View(), "Invalid credentials")
}

func TestLoginModel_SwitchesToDiscoverOnSuccess(t *testing.T) {
	u := me
	m := InitialLoginModel(testDeps(&u, &fakeAPI{}))

	next, _ := m.Update(authOKMsg{})
	require.IsType(t, DiscoverModel{}, next)
}

func TestSignupModel_PasswordMismatch(t *testing.T) {
	m := InitialSignupModel(testDeps(nil, &fakeAPI{}))
	m.inputs[fieldName].SetValue("Ann")
	m.inputs[fieldEmail].SetValue("ann@example.com")
	m.inputs[fieldPassword].SetValue("secret1")
	m.inputs[fieldConfirm].SetValue("secret2")
	m.inputs[fieldAge].SetValue("25")

	next, cmd := m.Update(keyMsg("enter"))
	sm := next.(SignupModel)

	require.Nil(t, cmd)
	require.Contains(t, sm.View(), "do not match")
}

func TestSignupModel_FormValidation(t *testing.T) {
	m := InitialSignupModel(testDeps(nil, &fakeAPI{}))
	m.inputs[fieldName].SetValue("Ann")
	m.inputs[fieldEmail].SetValue("ann@example.com")
	m.inputs[fieldPassword].SetValue("secret1")
	m.inputs[fieldAge].SetValue("25")

	data, err := m.form()
	require.NoError(t, err)
	require.Equal(t, 25, data.Age)

	m.inputs[fieldAge].SetValue("17")
	_, err = m.form()
	require.ErrorIs(t, err, models.ErrAgeOutOfRange)

	m.inputs[fieldAge].SetValue("abc")
	_, err = m.form()
	require.ErrorIs(t, err, models.ErrAgeOutOfRange)
}

func TestDiscoverModel_SwipesAdvanceThroughFeed(t *testing.T) {
	u := me
	m := InitialDiscoverModel(testDeps(&u, &fakeAPI{}))

	next, _ := m.Update(usersLoadedMsg{users: []models.User{
		{ID: 2, Name: "B", Age: 30},
		{ID: 3, Name: "C", Age: 25},
	}})
	dm := next.(DiscoverModel)
	require.Contains(t, dm.View(), "B, 30")

	next, _ = dm.Update(keyMsg("right")) // like
	dm = next.(DiscoverModel)
	require.Contains(t, dm.View(), "C, 25")

	next, _ = dm.Update(keyMsg("left")) // pass
	dm = next.(DiscoverModel)
	require.Contains(t, dm.View(), "No more profiles")
}

func TestConversationCmd_ReversesServerOrder(t *testing.T) {
	u := me
	f := &fakeAPI{conversation: []models.Message{
		{ID: 2, SenderID: 1, ReceiverID: 2, Content: "newest", Timestamp: "t2"},
		{ID: 1, SenderID: 2, ReceiverID: 1, Content: "oldest", Timestamp: "t1"},
	}}
	deps := testDeps(&u, f)

	msg := deps.conversationCmd(2)()
	loaded := msg.(messagesLoadedMsg)

	require.Equal(t, "oldest", loaded.messages[0].Content)
	require.Equal(t, "newest", loaded.messages[1].Content)
}

func TestChatModel_MarksIncomingUnreadOnLoad(t *testing.T) {
	u := me
	f := &fakeAPI{}
	deps := testDeps(&u, f)
	m := InitialChatModel(deps, models.ConversationUser{ID: 2, Name: "B"})

	next, cmd := m.Update(messagesLoadedMsg{messages: []models.Message{
		{ID: 10, SenderID: 2, ReceiverID: 1, Content: "unread for me", IsRead: false},
		{ID: 11, SenderID: 1, ReceiverID: 2, Content: "mine", IsRead: false},
		{ID: 12, SenderID: 2, ReceiverID: 1, Content: "already read", IsRead: true},
	}})
	require.NotNil(t, cmd)

	// run the batched command synchronously to trigger the mark-as-read calls
	drain(cmd)
	require.Equal(t, []int64{10}, f.markedRead, "only unread messages addressed to me")

	cm := next.(ChatModel)
	require.Contains(t, cm.View(), "unread for me")
}

func TestChatModel_SendFailureRestoresDraft(t *testing.T) {
	u := me
	m := InitialChatModel(testDeps(&u, &fakeAPI{}), models.ConversationUser{ID: 2, Name: "B"})

	next, _ := m.Update(sendFailedMsg{err: api.NetworkError("network error: timeout"), draft: "my draft"})
	cm := next.(ChatModel)

	require.Equal(t, "my draft", cm.textbox.Value())
	require.Contains(t, cm.View(), "send failed")
}

func TestProfileModel_LogoutReturnsToLogin(t *testing.T) {
	u := me
	deps := testDeps(&u, &fakeAPI{})
	m := InitialProfileModel(deps, 0)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	drain(cmd)
	require.Nil(t, deps.Session.CurrentUser())

	next, _ := m.Update(loggedOutMsg{})
	require.IsType(t, LoginModel{}, next)
}

func TestUnreadTick_IsScheduled(t *testing.T) {
	require.NotNil(t, unreadTick(time.Second))
}

// drain executes a command tree synchronously, following batches.
func drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(c)
		}
	}
}
