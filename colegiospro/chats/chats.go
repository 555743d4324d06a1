package chats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// appends a chat message; ID is filled from the database
func (r *repository) SaveMessage(ctx context.Context, msg *Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRow(
		ctx,
		queryInsertMessage,
		msg.SessionID,
		msg.Ref,
		msg.DisplayName,
		msg.RoleLabel,
		msg.Sender,
		msg.Content,
		msg.CreatedAt,
	).Scan(&msg.ID)

	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}

	return nil
}

// returns every message of a session, oldest first
func (r *repository) GetHistory(ctx context.Context, sessionID string) ([]*Message, error) {
	rows, err := r.db.Query(ctx, queryGetHistory, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}

	defer rows.Close()
	messages := make([]*Message, 0)

	for rows.Next() {
		var m Message
		err := rows.Scan(
			&m.ID,
			&m.SessionID,
			&m.Ref,
			&m.DisplayName,
			&m.RoleLabel,
			&m.Sender,
			&m.Content,
			&m.IsRead,
			&m.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

// returns one summary per session, most recently active first
func (r *repository) ListSessions(ctx context.Context) ([]*SessionSummary, error) {
	rows, err := r.db.Query(ctx, queryListSessions)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat sessions: %w", err)
	}

	defer rows.Close()
	summaries := make([]*SessionSummary, 0)

	for rows.Next() {
		var s SessionSummary
		err := rows.Scan(
			&s.SessionID,
			&s.Ref,
			&s.DisplayName,
			&s.RoleLabel,
			&s.LastAt,
			&s.MessageCount,
		)

		if err != nil {
			return nil, err
		}

		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}
