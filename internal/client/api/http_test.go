package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
	"github.com/mkorotkov/sparkmatch/internal/logging"
)

var _ Client = (*HTTPClient)(nil)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// recordedRequest captures what the backend stub saw.
type recordedRequest struct {
	method string
	path   string
	body   []byte
}

func newStub(t *testing.T, status int, response string) (*HTTPClient, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, 0, testLogger()), rec
}

func TestHTTPClient_Login_Success(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"data":{"id":1,"email":"a@b.com","name":"A","age":20}}`)

	u, err := c.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, "a@b.com", u.Email)

	require.Equal(t, http.MethodPost, rec.method)
	require.Equal(t, "/auth/login", rec.path)
	require.JSONEq(t, `{"email":"a@b.com","password":"x"}`, string(rec.body))
}

func TestHTTPClient_Login_ServerRejection(t *testing.T) {
	c, _ := newStub(t, http.StatusUnauthorized,
		`{"success":false,"message":"Invalid credentials"}`)

	_, err := c.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, KindServer, apiErr.Kind)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestHTTPClient_Login_ErrorFieldFallback(t *testing.T) {
	c, _ := newStub(t, http.StatusBadRequest,
		`{"success":false,"error":"email already taken"}`)

	_, err := c.Signup(context.Background(), models.SignupData{Email: "a@b.com"})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "email already taken", apiErr.Message)
}

func TestHTTPClient_Timeout_IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 20*time.Millisecond, testLogger())
	_, err := c.Login(context.Background(), "a@b.com", "x")

	require.Error(t, err)
	require.True(t, IsNetwork(err))
	require.NotEmpty(t, err.Error())
}

func TestHTTPClient_UndecodableBody_IsNetworkError(t *testing.T) {
	c, _ := newStub(t, http.StatusOK, `<html>gateway error</html>`)

	_, err := c.DiscoverUsers(context.Background(), 1)
	require.True(t, IsNetwork(err))
}

func TestHTTPClient_UnreachableHost_IsNetworkError(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", time.Second, testLogger())
	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.True(t, IsNetwork(err))
}

func TestHTTPClient_SetsHeaders(t *testing.T) {
	var contentType, requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0, testLogger())
	require.NoError(t, c.MarkAsRead(context.Background(), 7))
	require.Equal(t, "application/json", contentType)
	require.NotEmpty(t, requestID)
}

func TestHTTPClient_DiscoverUsers(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"users":[{"id":2,"email":"b@c.com","name":"B","age":30},{"id":3,"email":"c@d.com","name":"C","age":25}]}`)

	users, err := c.DiscoverUsers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "B", users[0].Name)

	require.Equal(t, http.MethodGet, rec.method)
	require.Equal(t, "/users/discover/1", rec.path)
}

func TestHTTPClient_UpdateProfile(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"data":{"id":1,"email":"a@b.com","name":"New Name","age":29,"bio":"hi"}}`)

	u, err := c.UpdateProfile(context.Background(), 1, models.ProfileUpdate{Name: "New Name", Age: 29, Bio: "hi"})
	require.NoError(t, err)
	require.Equal(t, "New Name", u.Name)

	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/users/1", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	require.Equal(t, "New Name", sent["name"])
	require.NotContains(t, sent, "email", "identity fields must not be sent")
}

func TestHTTPClient_SendMessage(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"data":{"id":9,"senderId":1,"receiverId":2,"content":"hey","sentAt":"2026-02-01T08:00:00Z"}}`)

	m, err := c.SendMessage(context.Background(), 1, 2, "hey")
	require.NoError(t, err)
	require.Equal(t, int64(9), m.ID)
	require.Equal(t, "2026-02-01T08:00:00Z", m.Timestamp, "sentAt must populate Timestamp")

	require.Equal(t, "/messages/send/1", rec.path)
	require.JSONEq(t, `{"receiverId":2,"content":"hey"}`, string(rec.body))
}

func TestHTTPClient_GetConversation_KeepsServerOrder(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"messages":[{"id":2,"senderId":1,"receiverId":2,"content":"second","timestamp":"t2"},{"id":1,"senderId":2,"receiverId":1,"content":"first","timestamp":"t1"}]}`)

	msgs, err := c.GetConversation(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Equal(t, "/messages/conversation/1/2", rec.path)
	require.Equal(t, int64(2), msgs[0].ID, "client must not reorder; UI reverses once")
}

func TestHTTPClient_GetConversations(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"conversations":[{"id":4,"otherUser":{"id":2,"name":"B"},"lastMessage":{"content":"yo","timestamp":"t","isRead":false}}]}`)

	convs, err := c.GetConversations(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "/messages/conversations/1", rec.path)
	require.Len(t, convs, 1)
	require.Equal(t, "B", convs[0].OtherUser.Name)
	require.False(t, convs[0].LastMessage.IsRead)
}

func TestHTTPClient_MarkAsRead(t *testing.T) {
	c, rec := newStub(t, http.StatusOK, `{"success":true}`)

	require.NoError(t, c.MarkAsRead(context.Background(), 42))
	require.Equal(t, http.MethodPut, rec.method)
	require.Equal(t, "/messages/42/read", rec.path)
}

func TestHTTPClient_UnreadCount(t *testing.T) {
	c, rec := newStub(t, http.StatusOK, `{"success":true,"data":{"count":5}}`)

	n, err := c.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "/messages/unread/1", rec.path)
}

func TestHTTPClient_GetProfile(t *testing.T) {
	c, rec := newStub(t, http.StatusOK,
		`{"success":true,"data":{"id":3,"email":"c@d.com","name":"C","age":31}}`)

	u, err := c.GetProfile(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "/users/3", rec.path)
	require.Equal(t, int64(3), u.ID)
}

func TestHTTPClient_MissingDataField(t *testing.T) {
	c, _ := newStub(t, http.StatusOK, `{"success":true}`)

	_, err := c.Login(context.Background(), "a@b.com", "x")
	require.True(t, IsNetwork(err), "success without a user record is a malformed response")
}
