package buffer

import (
	"context"
	"time"

	"codeberg.org/colegiospro/server/colegiospro/chats"
)

// redis key patterns
const (
	// chat:{sessionID}:messages - stores pending chat messages as JSON list
	keyChatMessages = "chat:%s:messages"

	// dirty_sessions:chat - set of session IDs with unflushed messages
	keyDirtySessionsChat = "dirty_sessions:chat"
)

const (
	DefaultFlushInterval = 5 * time.Second

	// upper bound for a single flush pass
	flushTimeout = 30 * time.Second
)

// queue of chat messages waiting to be written to Postgres
type MessageBuffer interface {
	AddMessage(ctx context.Context, msg *chats.Message) error
	PendingMessages(ctx context.Context, sessionID string) ([]*chats.Message, error)
	DirtySessions(ctx context.Context) ([]string, error)
	FlushMessages(ctx context.Context, sessionID string) ([]*chats.Message, error)
}
