package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
	"github.com/mkorotkov/sparkmatch/internal/logging"
)

// DefaultTimeout bounds a single request end to end. On expiry the call
// fails as a network error.
const DefaultTimeout = 10 * time.Second

// envelope is the common part of every backend response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e envelope) errorMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return fallback
}

// HTTPClient talks JSON over HTTP to the backend at a fixed base URL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

// do performs one request and decodes the response into out (when non-nil).
// Any transport problem or undecodable body becomes a KindNetwork error;
// a decodable body with success=false becomes a KindServer error carrying
// the server's message.
func (c *HTTPClient) do(ctx context.Context, method, path string, reqBody any, out any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return NetworkError(fmt.Sprintf("encode request: %s", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return NetworkError(fmt.Sprintf("build request: %s", err))
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.log.Debug(ctx, "api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "api request failed", "path", path, "request_id", requestID, "error", err)
		return NetworkError(fmt.Sprintf("network error: %s", err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NetworkError(fmt.Sprintf("read response: %s", err))
	}

	c.log.Debug(ctx, "api response", "path", path, "request_id", requestID, "status", resp.StatusCode)

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return NetworkError(fmt.Sprintf("unexpected response (%s)", resp.Status))
	}
	if !env.Success {
		return ServerError(env.errorMessage(resp.Status))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return NetworkError(fmt.Sprintf("decode response: %s", err))
		}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var resp struct {
		Data *models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, NetworkError("login response missing user record")
	}
	return resp.Data, nil
}

func (c *HTTPClient) Signup(ctx context.Context, data models.SignupData) (*models.User, error) {
	var resp struct {
		Data *models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", data, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, NetworkError("signup response missing user record")
	}
	return resp.Data, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	var resp struct {
		Data *models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, NetworkError("profile response missing user record")
	}
	return resp.Data, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (*models.User, error) {
	var resp struct {
		Data *models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", userID), upd, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, NetworkError("profile response missing user record")
	}
	return resp.Data, nil
}

func (c *HTTPClient) DiscoverUsers(ctx context.Context, userID int64) ([]models.User, error) {
	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/discover/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*models.Message, error) {
	req := struct {
		ReceiverID int64  `json:"receiverId"`
		Content    string `json:"content"`
	}{ReceiverID: receiverID, Content: content}

	var resp struct {
		Data *models.Message `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/messages/send/%d", senderID), req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, NetworkError("send response missing message record")
	}
	return resp.Data, nil
}

// GetConversation returns the server's ordering unchanged (newest first);
// the UI reverses once to render oldest first.
func (c *HTTPClient) GetConversation(ctx context.Context, userID1, userID2 int64) ([]models.Message, error) {
	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	path := fmt.Sprintf("/messages/conversation/%d/%d", userID1, userID2)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

func (c *HTTPClient) GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	var resp struct {
		Conversations []models.Conversation `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/messages/conversations/%d", userID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

func (c *HTTPClient) MarkAsRead(ctx context.Context, messageID int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/messages/%d/read", messageID), nil, nil)
}

func (c *HTTPClient) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var resp struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/messages/unread/%d", userID), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Data.Count, nil
}
