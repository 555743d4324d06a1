package config

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/colegiospro/server/internal/relay"
	"gopkg.in/yaml.v3"
)

// builds the auto-replier; an empty path uses the built-in table, and fields
// missing from the file fall back to their built-in values
func LoadAutoReplier(path string) (*relay.AutoReplier, error) {
	if path == "" {
		return relay.DefaultAutoReplier(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read auto-replies file: %w", err)
	}

	return ParseAutoReplier(data)
}

// parses a YAML auto-reply table
func ParseAutoReplier(data []byte) (*relay.AutoReplier, error) {
	var file RepliesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse auto-replies file: %w", err)
	}

	rules := relay.DefaultReplyRules()

	if len(file.Rules) > 0 {
		rules = make([]relay.ReplyRule, 0, len(file.Rules))

		for i, entry := range file.Rules {
			keywords := make([]string, 0, len(entry.Keywords))
			for _, kw := range entry.Keywords {
				if kw = strings.TrimSpace(kw); kw != "" {
					keywords = append(keywords, kw)
				}
			}

			if len(keywords) == 0 || strings.TrimSpace(entry.Reply) == "" {
				return nil, fmt.Errorf("auto-reply rule %d needs keywords and a reply", i+1)
			}

			rules = append(rules, relay.ReplyRule{Keywords: keywords, Reply: entry.Reply})
		}
	}

	firstContact := file.FirstContact
	if firstContact == "" {
		firstContact = relay.DefaultFirstContactReply
	}

	fallback := file.Fallback
	if fallback == "" {
		fallback = relay.DefaultFallbackReply
	}

	return relay.NewAutoReplier(rules, firstContact, fallback), nil
}
