package buffer

import (
	"context"
	"sort"

	"codeberg.org/colegiospro/server/colegiospro/chats"
	"codeberg.org/colegiospro/server/internal/logger"
)

// wraps a chats.Repository with Redis buffering
// writes go to Redis first, reads merge Postgres with pending messages
type BufferedRepository struct {
	db     chats.Repository
	buffer MessageBuffer
}

// creates a new buffered repository wrapper
func NewBufferedRepository(db chats.Repository, buffer MessageBuffer) *BufferedRepository {
	return &BufferedRepository{
		db:     db,
		buffer: buffer,
	}
}

// buffers to Redis instead of a direct Postgres write
func (r *BufferedRepository) SaveMessage(ctx context.Context, msg *chats.Message) error {
	if err := r.buffer.AddMessage(ctx, msg); err != nil {
		logger.ErrorErr(err, "failed to buffer message", "session_id", msg.SessionID)
		// fall back to direct DB write
		return r.db.SaveMessage(ctx, msg)
	}

	return nil
}

// returns persisted history followed by buffered messages, oldest first
func (r *BufferedRepository) GetHistory(ctx context.Context, sessionID string) ([]*chats.Message, error) {
	messages, err := r.db.GetHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	pending, err := r.buffer.PendingMessages(ctx, sessionID)
	if err != nil {
		logger.Warn("failed to read buffered history", "session_id", sessionID, "error", err)
		return messages, nil
	}

	if len(pending) == 0 {
		return messages, nil
	}

	messages = append(messages, pending...)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

// returns persisted session summaries updated with buffered activity
func (r *BufferedRepository) ListSessions(ctx context.Context) ([]*chats.SessionSummary, error) {
	summaries, err := r.db.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	dirty, err := r.buffer.DirtySessions(ctx)
	if err != nil {
		logger.Warn("failed to read dirty chat sessions", "error", err)
		return summaries, nil
	}

	if len(dirty) == 0 {
		return summaries, nil
	}

	bySession := make(map[string]*chats.SessionSummary, len(summaries))
	for _, s := range summaries {
		bySession[s.SessionID] = s
	}

	for _, sessionID := range dirty {
		pending, err := r.buffer.PendingMessages(ctx, sessionID)
		if err != nil || len(pending) == 0 {
			continue
		}

		summary, exists := bySession[sessionID]
		if !exists {
			summary = &chats.SessionSummary{SessionID: sessionID}
			bySession[sessionID] = summary
			summaries = append(summaries, summary)
		}

		for _, msg := range pending {
			summary.MessageCount++

			if msg.CreatedAt.After(summary.LastAt) {
				summary.LastAt = msg.CreatedAt
			}

			// pending rows are newer than persisted ones; only visitor rows name the session
			if msg.Sender == chats.SenderVisitor {
				summary.Ref = msg.Ref
				summary.DisplayName = msg.DisplayName
				summary.RoleLabel = msg.RoleLabel
			}
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LastAt.After(summaries[j].LastAt)
	})

	return summaries, nil
}
