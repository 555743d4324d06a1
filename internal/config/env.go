package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"codeberg.org/colegiospro/server/internal/relay"
	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return FromEnvironment()
}

// reads configuration from the current process environment
func FromEnvironment() (*Config, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	adminKey := os.Getenv("ADMIN_CHAT_KEY")
	jwtSecret := os.Getenv("JWT_SECRET")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if adminKey == "" {
		return nil, fmt.Errorf("ADMIN_CHAT_KEY environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	delay := relay.DefaultAutoReplyDelay
	if raw := os.Getenv("AUTO_REPLY_DELAY"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTO_REPLY_DELAY %q: %w", raw, err)
		}

		if parsed < 0 {
			return nil, fmt.Errorf("AUTO_REPLY_DELAY must not be negative")
		}

		delay = parsed
	}

	trackRate := os.Getenv("TRACK_RATE_LIMIT")
	if trackRate == "" {
		trackRate = DefaultTrackRateLimit
	}

	return &Config{
		Port:            port,
		Environment:     environment,
		DatabaseURL:     databaseURL,
		RedisURL:        os.Getenv("REDIS_URL"),
		AdminChatKey:    adminKey,
		JWTSecret:       jwtSecret,
		AutoReplyDelay:  delay,
		AutoRepliesFile: os.Getenv("AUTO_REPLIES_FILE"),
		AllowedOrigins:  splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		TrackRateLimit:  trackRate,
	}, nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}

	origins := make([]string, 0)

	for origin := range strings.SplitSeq(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
