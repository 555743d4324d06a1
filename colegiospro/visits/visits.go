package visits

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

func (r *repository) SaveVisit(ctx context.Context, visit *Visit) error {
	if visit.CreatedAt.IsZero() {
		visit.CreatedAt = time.Now().UTC()
	}

	err := r.db.QueryRow(
		ctx,
		queryInsertVisit,
		visit.Ref,
		visit.DisplayName,
		visit.RoleLabel,
		visit.Action,
		visit.ClientIP,
		visit.UserAgent,
		visit.Referrer,
		visit.CreatedAt,
	).Scan(&visit.ID)

	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	return nil
}

// returns the most recent visits, newest first
func (r *repository) ListRecent(ctx context.Context, limit int) ([]*Visit, error) {
	rows, err := r.db.Query(ctx, queryListRecent, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}

	defer rows.Close()
	list := make([]*Visit, 0)

	for rows.Next() {
		var v Visit
		err := rows.Scan(
			&v.ID,
			&v.Ref,
			&v.DisplayName,
			&v.RoleLabel,
			&v.Action,
			&v.ClientIP,
			&v.UserAgent,
			&v.Referrer,
			&v.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		list = append(list, &v)
	}

	return list, rows.Err()
}

// bounds a caller-supplied list limit
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}

	return min(limit, MaxListLimit)
}
