package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// client roles
const (
	RoleVisitor = "visitor"
	RoleAdmin   = "admin"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 16 * 1024 // 16 KB

	// outbound frames queued per client before it counts as stalled
	sendBufferSize = 256

	// inbound message rate per connection
	messagesPerSecond = 2
	messageBurst      = 10
)

// close code sent to rejected admin connections
const CloseUnauthorized = 4001

// handles one inbound frame; called sequentially from the read pump
type MessageHandler func(data []byte)

// represents a single websocket connection (visitor or admin)
type Client struct {
	ID        string
	SessionID string
	Role      string
	IPAddress string

	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	mu      sync.RWMutex
	closed  bool
}
