package relay

import (
	"context"
	"errors"
	"sync"
	"time"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/colegiospro/visits"
	"golang.org/x/sync/errgroup"
)

// outbound event types delivered to visitors
const (
	// is sent to a visitor while a reply is being prepared
	TypeTyping = "typing"

	// is sent to a visitor with an admin or auto-generated reply
	TypeMessage = "message"
)

// outbound event types delivered to admins
const (
	// is sent when a visitor socket registers
	TypeVisitorConnected = "visitor_connected"

	// is sent when a visitor socket goes away
	TypeVisitorDisconnected = "visitor_disconnected"

	// is sent for every non-empty visitor message
	TypeVisitorMessage = "visitor_message"

	// is sent once to an admin right after it connects
	TypeVisitorList = "visitor_list"

	// is sent for notable tracking actions
	TypeTrackEvent = "track_event"
)

// tracking actions
const (
	ActionPageView     = "page_view"
	ActionChatOpened   = "chat_opened"
	ActionPWAInstalled = "pwa_installed"
	ActionMessageSent  = "message_sent"
	ActionWSConnected  = "ws_connected"
)

// ref assigned to visitors arriving without a campaign tag
const DefaultRef = "direct"

const (
	// upper bound for a single persistence call
	persistTimeout = 5 * time.Second

	// reference simulated-typing delay for auto-replies
	DefaultAutoReplyDelay = 1500 * time.Millisecond
)

// errors
var (
	ErrSessionExists    = errors.New("session already registered")
	ErrConnectionClosed = errors.New("connection closed")
)

// a live transport endpoint (visitor or admin socket)
type Conn interface {
	// enqueues an event for delivery; an error means the peer is gone
	Send(event any) error

	// closes the underlying transport, safe to call more than once
	Close()
}

// the durable log consumed by the relay
type Store interface {
	SaveMessage(ctx context.Context, msg *chats.Message) error
	SaveVisit(ctx context.Context, visit *visits.Visit) error
}

// one visitor's live connection state
type VisitorSession struct {
	SessionID     string
	Ref           string
	DisplayName   string
	RoleLabel     string
	ConnectedAt   time.Time
	LastMessageAt *time.Time

	// visitor messages seen on this connection
	MessageCount int
}

// public view of a visitor for admin status queries
type VisitorInfo struct {
	SessionID     string     `json:"session_id"`
	Ref           string     `json:"ref"`
	DisplayName   string     `json:"display_name"`
	RoleLabel     string     `json:"role_label"`
	ConnectedAt   time.Time  `json:"connected_at"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

// returns the admin-facing view of the session
func (s VisitorSession) Info() VisitorInfo {
	return VisitorInfo{
		SessionID:     s.SessionID,
		Ref:           s.Ref,
		DisplayName:   s.DisplayName,
		RoleLabel:     s.RoleLabel,
		ConnectedAt:   s.ConnectedAt,
		LastMessageAt: s.LastMessageAt,
	}
}

// called by the registry after a membership change, outside its lock
type RegistryListener func(eventType string, session VisitorSession, total int)

// holds live visitor sessions keyed by session ID
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*registryEntry
	listener RegistryListener
}

type registryEntry struct {
	session VisitorSession
	conn    Conn
}

// holds connected admin sockets
type AdminSet struct {
	mu    sync.RWMutex
	conns []Conn
}

// routes events between visitors and admins and runs the auto-reply fallback
type Router struct {
	registry  *Registry
	admins    *AdminSet
	store     Store
	replies   *AutoReplier
	delay     time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	tasks     errgroup.Group
	mu        sync.RWMutex
	stopped   bool
	onVisitor func(session VisitorSession)
}
