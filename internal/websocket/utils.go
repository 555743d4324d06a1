package websocket

import (
	"net/http"
	"slices"
	"strings"

	"codeberg.org/colegiospro/server/internal/logger"
	"github.com/google/uuid"
)

// returns an origin check for the websocket upgrader; outside production
// every origin is accepted
func NewOriginChecker(production bool, allowedOrigins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if !production {
			return true
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			logger.Warn("websocket connection with no origin header")
			return false
		}

		if len(allowedOrigins) == 0 {
			logger.Warn("websocket origin rejected - ALLOWED_ORIGINS not configured",
				"origin", origin,
			)
			return false
		}

		if slices.Contains(allowedOrigins, origin) {
			return true
		}

		logger.Warn("websocket origin rejected - not in allowed origins",
			"origin", origin,
			"allowed_origins", allowedOrigins,
		)

		return false
	}
}

// maps a campaign tag onto the session-id alphabet; every other rune becomes '-'
func SanitizeRef(ref string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_' || r == '.' || r == '-':
			return r
		default:
			return '-'
		}
	}, ref)
}

// mints a visitor session ID as ref plus a random 8-hex suffix
func GenerateSessionID(ref string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return ref + "-" + suffix
}

func GenerateClientID() string {
	return uuid.NewString()
}
