// Package api is the typed request/response boundary to the Sparkmatch
// backend. One attempt per call, no retries, no caching; every failure
// comes back as a *Error so callers never see a raw transport fault.
package api

import (
	"context"

	"github.com/mkorotkov/sparkmatch/internal/client/models"
)

// Client is the remote API surface the rest of the client programs against.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Signup(ctx context.Context, data models.SignupData) (*models.User, error)

	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd models.ProfileUpdate) (*models.User, error)
	DiscoverUsers(ctx context.Context, userID int64) ([]models.User, error)

	SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*models.Message, error)
	GetConversation(ctx context.Context, userID1, userID2 int64) ([]models.Message, error)
	GetConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	MarkAsRead(ctx context.Context, messageID int64) error
	UnreadCount(ctx context.Context, userID int64) (int, error)
}
