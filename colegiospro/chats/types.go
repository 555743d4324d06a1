package chats

import (
	"context"
	"time"
)

// message senders (must match DB check constraint)
const (
	SenderVisitor = "visitor"
	SenderAdmin   = "admin"
)

// repository interface for chat message persistence
type Repository interface {
	SaveMessage(ctx context.Context, msg *Message) error
	GetHistory(ctx context.Context, sessionID string) ([]*Message, error)
	ListSessions(ctx context.Context) ([]*SessionSummary, error)
}

// represents one persisted chat line between a visitor and an admin
type Message struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	Ref         string    `json:"ref"`
	DisplayName string    `json:"display_name"`
	RoleLabel   string    `json:"role_label"`
	Sender      string    `json:"sender"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// aggregates the messages of one session
type SessionSummary struct {
	SessionID    string    `json:"session_id"`
	Ref          string    `json:"ref"`
	DisplayName  string    `json:"display_name"`
	RoleLabel    string    `json:"role_label"`
	LastAt       time.Time `json:"last_at"`
	MessageCount int       `json:"msg_count"`
}
