package chat

import "time"

// one line of a session transcript
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// a past or live chat session
type SessionEntry struct {
	SessionID    string    `json:"session_id"`
	Ref          string    `json:"ref"`
	DisplayName  string    `json:"display_name"`
	RoleLabel    string    `json:"role_label"`
	LastAt       time.Time `json:"last_at"`
	MessageCount int       `json:"msg_count"`
	IsOnline     bool      `json:"is_online"`
}

type VisitsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}
