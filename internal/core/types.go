package core

// Config represents the complete banterbot configuration structure
type Config struct {
	APIServer APIServerConfig `yaml:"api_server"`
	Slack     SlackConfig     `yaml:"slack"`
	Security  SecurityConfig  `yaml:"security"`
	Music     MusicConfig     `yaml:"music"`
	Quotes    QuotesConfig    `yaml:"quotes"`
	Advice    AdviceConfig    `yaml:"advice"`
	Features  FeaturesConfig  `yaml:"features"`
	Feed      FeedConfig      `yaml:"feed"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// APIServerConfig represents the auth/status HTTP server configuration
type APIServerConfig struct {
	Port int `yaml:"port"`
}

// SlackConfig represents the chat transport configuration
type SlackConfig struct {
	Token     string `yaml:"token"`
	BotUserID string `yaml:"bot_user_id"` // the bot's own user ID, used for mention detection
}

// SecurityConfig represents channel and user gating configuration
type SecurityConfig struct {
	WhitelistedChannels []string `yaml:"whitelisted_channels"`
	MusicChannels       []string `yaml:"music_channels"`
	VIPUserID           string   `yaml:"vip_user_id"`
}

// MusicConfig represents the music-service configuration
type MusicConfig struct {
	APIBaseURL      string `yaml:"api_base_url"`
	PartyPlaylistID string `yaml:"party_playlist_id"`
}

// QuotesConfig represents the quote list document and its daily request limit
type QuotesConfig struct {
	File       string `yaml:"file"`
	DailyLimit int    `yaml:"daily_limit"`
}

// AdviceConfig represents the advice-slip service for the wisdom handler
type AdviceConfig struct {
	URL string `yaml:"url"`
}

// FeaturesConfig represents the feature-request list document
type FeaturesConfig struct {
	File string `yaml:"file"`
}

// FeedConfig represents the company-news feed and its optional poll job
type FeedConfig struct {
	URL      string `yaml:"url"`
	PollCron string `yaml:"poll_cron"` // empty disables the periodic poster
	Channel  string `yaml:"channel"`   // channel the poll job posts into
	Limit    int    `yaml:"limit"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	File         string `yaml:"file"`          // Log file path
	MaxSize      int    `yaml:"max_size"`      // Single file max size in MB
	MaxBackups   int    `yaml:"max_backups"`   // Number of backups to keep
	MaxAge       int    `yaml:"max_age"`       // Maximum days to retain
	Compress     bool   `yaml:"compress"`      // Whether to compress old logs
	EnableStdout bool   `yaml:"enable_stdout"` // Also output to stdout
}

// IsWhitelistedChannel reports whether the bot answers in the given channel.
func (c *Config) IsWhitelistedChannel(channelID string) bool {
	for _, id := range c.Security.WhitelistedChannels {
		if id == channelID {
			return true
		}
	}
	return false
}

// IsMusicChannel reports whether music commands are allowed in the channel.
func (c *Config) IsMusicChannel(channelID string) bool {
	for _, id := range c.Security.MusicChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
