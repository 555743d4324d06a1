package config

import "time"

// ulule formatted default rate for public POST endpoints
const DefaultTrackRateLimit = "60-M"

const DefaultPort = "8080"

type Config struct {
	Port            string
	Environment     string
	DatabaseURL     string
	RedisURL        string
	AdminChatKey    string
	JWTSecret       string
	AutoReplyDelay  time.Duration
	AutoRepliesFile string
	AllowedOrigins  []string
	TrackRateLimit  string
}

// reports whether the process runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// on-disk layout of the auto-reply table
type RepliesFile struct {
	Rules        []ReplyRuleEntry `yaml:"rules"`
	FirstContact string           `yaml:"first_contact"`
	Fallback     string           `yaml:"fallback"`
}

type ReplyRuleEntry struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}
