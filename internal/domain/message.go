package domain

import (
	"context"
	"time"
)

// Message is append-only; there is no edit or delete path.
type Message struct {
	ID               int64     `json:"id"`
	SenderID         int64     `json:"sender_id"`
	ReceiverID       int64     `json:"receiver_id"`
	Content          string    `json:"content"`
	SentAt           time.Time `json:"sent_at"`
	SenderUsername   string    `json:"sender_username,omitempty"`
	ReceiverUsername string    `json:"receiver_username,omitempty"`
}

// Conversation summarises the latest exchange with one counterpart.
type Conversation struct {
	UserID      int64   `json:"user_id"`
	Username    string  `json:"username"`
	LastMessage Message `json:"last_message"`
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// ListFromTo returns messages sent by senderID to receiverID in insertion order.
	ListFromTo(ctx context.Context, senderID, receiverID int64) ([]Message, error)
	// ListByParticipant returns every message sent or received by userID, newest first.
	ListByParticipant(ctx context.Context, userID int64) ([]Message, error)
}

// Notifier pushes a stored message to the receiver's realtime channel.
type Notifier interface {
	Notify(ctx context.Context, username string, msg *Message) error
}

type MessageUsecase interface {
	GetConversation(ctx context.Context, who Identity, otherUserID int64) ([]Message, error)
	Send(ctx context.Context, who Identity, receiverID int64, content string) (*Message, error)
	ListConversations(ctx context.Context, who Identity) ([]Conversation, error)
}
