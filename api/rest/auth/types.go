package auth

import "time"

type TokenRequest struct {
	Key string `json:"key" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
