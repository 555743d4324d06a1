package buffer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/internal/logger"
)

// handles Redis-backed buffering for chat messages
type ChatBuffer struct {
	client *redis.Client
}

// creates a new chat buffer with Redis connection
func NewChatBuffer(redisURL string) (*ChatBuffer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // G104: failed setup
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis")

	return &ChatBuffer{client: client}, nil
}

// closes the Redis connection
func (b *ChatBuffer) Close() error {
	return b.client.Close()
}

// appends a message to the session's buffer and marks the session dirty
func (b *ChatBuffer) AddMessage(ctx context.Context, msg *chats.Message) error {
	msgJSON, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	pipe := b.client.Pipeline()

	msgKey := fmt.Sprintf(keyChatMessages, msg.SessionID)
	pipe.RPush(ctx, msgKey, msgJSON)
	pipe.SAdd(ctx, keyDirtySessionsChat, msg.SessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add message to redis: %w", err)
	}

	return nil
}

// returns the messages still waiting for a flush without removing them
func (b *ChatBuffer) PendingMessages(ctx context.Context, sessionID string) ([]*chats.Message, error) {
	msgKey := fmt.Sprintf(keyChatMessages, sessionID)

	msgJSONs, err := b.client.LRange(ctx, msgKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read buffered messages: %w", err)
	}

	return decodeMessages(sessionID, msgJSONs), nil
}

// returns all session IDs with unflushed messages
func (b *ChatBuffer) DirtySessions(ctx context.Context) ([]string, error) {
	return b.client.SMembers(ctx, keyDirtySessionsChat).Result()
}

// retrieves and clears all messages for a session
func (b *ChatBuffer) FlushMessages(ctx context.Context, sessionID string) ([]*chats.Message, error) {
	msgKey := fmt.Sprintf(keyChatMessages, sessionID)

	// read and delete atomically so concurrent appends land in the next flush
	pipe := b.client.TxPipeline()
	lrange := pipe.LRange(ctx, msgKey, 0, -1)
	pipe.Del(ctx, msgKey)
	pipe.SRem(ctx, keyDirtySessionsChat, sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to flush messages from redis: %w", err)
	}

	return decodeMessages(sessionID, lrange.Val()), nil
}

func decodeMessages(sessionID string, msgJSONs []string) []*chats.Message {
	messages := make([]*chats.Message, 0, len(msgJSONs))

	for _, msgJSON := range msgJSONs {
		var msg chats.Message
		if err := json.Unmarshal([]byte(msgJSON), &msg); err != nil {
			logger.ErrorErr(err, "failed to unmarshal buffered message", "session_id", sessionID)
			continue
		}

		messages = append(messages, &msg)
	}

	return messages
}
