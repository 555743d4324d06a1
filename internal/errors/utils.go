package errors

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ref-prefixed session ids: campaign tag, dash, 8 hex chars
var sessionIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,100}-[0-9a-f]{8}$`)

// error categories for classification
const (
	CategoryDatabase   = "database"
	CategoryNetwork    = "network"
	CategoryValidation = "validation"
	CategoryAuth       = "auth"
	CategoryNotFound   = "not_found"
	CategoryTimeout    = "timeout"
	CategoryUnknown    = "unknown"
)

func isProduction() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

// analyzes an error and returns its category and sanitized message
func classifyError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, ""}
	}

	prod := isProduction()

	// database errors (pgx-specific)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ErrorInfo{CategoryDatabase, ternary(prod, "database operation failed", err.Error())}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorInfo{CategoryNotFound, ternary(prod, "resource not found", err.Error())}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorInfo{CategoryTimeout, ternary(prod, "request timed out", err.Error())}
	}

	if errors.Is(err, context.Canceled) {
		return ErrorInfo{CategoryTimeout, ternary(prod, "request canceled", err.Error())}
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	switch {
	case containsAny(errMsg, "timeout", "deadline"):
		return ErrorInfo{CategoryTimeout, ternary(prod, "request timed out", err.Error())}
	case containsAny(errMsg, "not found", "no rows"):
		return ErrorInfo{CategoryNotFound, ternary(prod, "resource not found", err.Error())}
	case containsAny(errMsg, "database", "sql", "postgres", "pgx", "redis"):
		return ErrorInfo{CategoryDatabase, ternary(prod, "database operation failed", err.Error())}
	case containsAny(errMsg, "connection", "network", "dial"):
		return ErrorInfo{CategoryNetwork, ternary(prod, "connection error occurred", err.Error())}
	case containsAny(errMsg, "validation", "binding", "invalid", "required"):
		return ErrorInfo{CategoryValidation, ternary(prod, "validation failed", err.Error())}
	case containsAny(errMsg, "unauthorized", "forbidden", "permission", "auth", "token"):
		return ErrorInfo{CategoryAuth, ternary(prod, "permission denied", err.Error())}
	}

	return ErrorInfo{CategoryUnknown, ternary(prod, "an error occurred", err.Error())}
}

// returns the client-safe text for an error
func sanitizeError(err error) string {
	return classifyError(err).sanitized
}

// validates a visitor session id
func IsValidSessionID(id string) bool {
	return sessionIDRegex.MatchString(id)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
