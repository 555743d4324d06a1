package relay

import "time"

// tells a visitor that a reply is on its way
type TypingEvent struct {
	Type string `json:"type"`
}

// carries a reply to a visitor
type MessageEvent struct {
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// announces a visitor connect or disconnect to admins
type VisitorPresenceEvent struct {
	Type          string    `json:"type"`
	SessionID     string    `json:"session_id"`
	Ref           string    `json:"ref"`
	DisplayName   string    `json:"display_name"`
	RoleLabel     string    `json:"role_label"`
	ConnectedAt   time.Time `json:"connected_at"`
	TotalVisitors int       `json:"total_visitors"`
}

// forwards a visitor message to admins
type VisitorMessageEvent struct {
	Type        string    `json:"type"`
	SessionID   string    `json:"session_id"`
	Ref         string    `json:"ref"`
	DisplayName string    `json:"display_name"`
	RoleLabel   string    `json:"role_label"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
}

// the list of online visitors sent to a newly connected admin
type VisitorListEvent struct {
	Type     string        `json:"type"`
	Visitors []VisitorInfo `json:"visitors"`
	Total    int           `json:"total"`
}

// pushes a notable tracking action to admins
type TrackEventNotice struct {
	Type        string    `json:"type"`
	Action      string    `json:"action"`
	Ref         string    `json:"ref"`
	DisplayName string    `json:"display_name"`
	RoleLabel   string    `json:"role_label"`
	Timestamp   time.Time `json:"timestamp"`
}

// current relay counts plus the live visitor list
type Stats struct {
	VisitorsOnline int           `json:"visitors_online"`
	AdminsOnline   int           `json:"admins_online"`
	Visitors       []VisitorInfo `json:"visitors"`
}
