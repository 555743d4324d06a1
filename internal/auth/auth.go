package auth

import (
	"crypto/subtle"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// compares a presented admin key with ADMIN_CHAT_KEY in constant time
func CheckAdminKey(key string) bool {
	expected := os.Getenv("ADMIN_CHAT_KEY")
	if expected == "" || key == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(key), []byte(expected)) == 1
}

// creates an admin JWT token
func GenerateJWT() (string, time.Time, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("JWT_SECRET not set")
	}

	now := time.Now()
	expiresAt := now.Add(TokenTTL)

	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// validates a JWT token and returns the claims
func ValidateJWT(tokenString string) (*Claims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// accepts either the raw admin key or an admin bearer token
func IsAdmin(key, token string) bool {
	if CheckAdminKey(key) {
		return true
	}

	if token == "" {
		return false
	}

	claims, err := ValidateJWT(token)
	return err == nil && claims.Role == RoleAdmin
}
