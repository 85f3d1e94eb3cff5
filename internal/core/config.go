// Package core provides the dispatch engine and configuration for banterbot.
//
// The core package owns everything between the chat transport and the reply
// handlers:
//
//   - Configuration loading and validation (from YAML files)
//   - The ordered rule registry and first-match dispatch
//   - The pending-confirmation slot for the two-step playlist flow
//   - The per-day quote throttle
//   - The HTTP surface for the music-service credential lifecycle
//
// # Example Configuration
//
//	api_server:
//	  port: 3000
//	slack:
//	  token: "${SLACK_TOKEN}"
//	  bot_user_id: "UPD1FRQGM"
//	security:
//	  whitelisted_channels: ["GDYFAL0HJ", "CD2FKB621"]
//	  music_channels: ["CD2FKB621"]
//	  vip_user_id: "UBZA4KPKP"
//	music:
//	  api_base_url: "https://api.spotify.com"
//	  party_playlist_id: "0vXdwTD04TCEivqsMnj0oM"
package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wickhamj/banterbot/pkg/constants"
)

const (
	DefaultLogLevel      = "info"
	DefaultLogMaxBackups = 5
	DefaultQuotesFile    = "data/quotes.json"
	DefaultFeaturesFile  = "data/features.json"
	DefaultFeedLimit     = 3
	DefaultAdviceURL     = "https://api.adviceslip.com/advice"
)

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return ""
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig applies defaults and performs basic validation
func validateConfig(config *Config) error {
	if config.Slack.Token == "" {
		return fmt.Errorf("slack.token is required")
	}
	if config.Slack.BotUserID == "" {
		return fmt.Errorf("slack.bot_user_id is required")
	}

	if len(config.Security.WhitelistedChannels) == 0 {
		return fmt.Errorf("security.whitelisted_channels cannot be empty")
	}

	// Music channels must be a subset of the whitelist; a music channel the
	// bot ignores entirely would be unreachable.
	for _, id := range config.Security.MusicChannels {
		if !config.IsWhitelistedChannel(id) {
			return fmt.Errorf("music channel %s is not in the channel whitelist", id)
		}
	}

	if config.APIServer.Port == 0 {
		config.APIServer.Port = constants.DefaultAPIPort
	}

	if config.Music.APIBaseURL == "" {
		return fmt.Errorf("music.api_base_url is required")
	}

	if config.Quotes.File == "" {
		config.Quotes.File = DefaultQuotesFile
	}
	if config.Quotes.DailyLimit == 0 {
		config.Quotes.DailyLimit = constants.DefaultQuoteDailyLimit
	}
	if config.Features.File == "" {
		config.Features.File = DefaultFeaturesFile
	}
	if config.Advice.URL == "" {
		config.Advice.URL = DefaultAdviceURL
	}

	if config.Feed.PollCron != "" {
		if config.Feed.URL == "" {
			return fmt.Errorf("feed.url is required when feed.poll_cron is set")
		}
		if config.Feed.Channel == "" {
			return fmt.Errorf("feed.channel is required when feed.poll_cron is set")
		}
	}
	if config.Feed.Limit == 0 {
		config.Feed.Limit = DefaultFeedLimit
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}

	return nil
}
