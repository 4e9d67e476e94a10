package models

import "encoding/json"

// Message is a single direct message between two users. Timestamp is kept
// as the backend's string representation; display formatting happens in
// the UI layer.
type Message struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	IsRead     bool   `json:"isRead"`
}

// UnmarshalJSON accepts both timestamp spellings the backend has used:
// "timestamp" and the newer "sentAt". When both are present, sentAt wins.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		SentAt string `json:"sentAt"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.SentAt != "" {
		m.Timestamp = aux.SentAt
	}
	return nil
}

// ConversationUser is the counterparty summary embedded in a Conversation.
type ConversationUser struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// LastMessage is the most recent message summary embedded in a Conversation.
type LastMessage struct {
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"isRead"`
}

// Conversation is a read-only, per-counterparty projection of the message
// history, produced entirely by the backend.
type Conversation struct {
	ID          int64            `json:"id"`
	OtherUser   ConversationUser `json:"otherUser"`
	LastMessage LastMessage      `json:"lastMessage"`
}
