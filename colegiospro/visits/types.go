package visits

import (
	"context"
	"time"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// repository interface for visit event persistence
type Repository interface {
	SaveVisit(ctx context.Context, visit *Visit) error
	ListRecent(ctx context.Context, limit int) ([]*Visit, error)
}

// represents one tracked visitor action on the landing page
type Visit struct {
	ID          int64     `json:"id"`
	Ref         string    `json:"ref"`
	DisplayName string    `json:"display_name"`
	RoleLabel   string    `json:"role_label"`
	Action      string    `json:"action"`
	ClientIP    string    `json:"ip"`
	UserAgent   string    `json:"user_agent"`
	Referrer    string    `json:"referrer"`
	CreatedAt   time.Time `json:"created_at"`
}
