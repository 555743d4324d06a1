package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"

	// lifetime of an admin bearer token
	TokenTTL = 7 * 24 * time.Hour

	// header carrying the raw admin key on REST calls
	HeaderAdminKey = "X-Admin-Key"
)

// represents JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
