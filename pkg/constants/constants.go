package constants

import "time"

// Message buffer sizes
const (
	// MessageChannelBufferSize is the buffer size for the inbound message channel
	MessageChannelBufferSize = 100
)

// HTTP defaults
const (
	// DefaultAPIPort is the default port for the auth/status HTTP server
	DefaultAPIPort = 3000
	// DefaultHTTPTimeout is the timeout for outbound REST calls
	DefaultHTTPTimeout = 10 * time.Second
	// APIShutdownTimeout is the grace period for stopping the HTTP server
	APIShutdownTimeout = 5 * time.Second
)

// Quote throttling
const (
	// DefaultQuoteDailyLimit is the number of requested quotes served per day
	DefaultQuoteDailyLimit = 5
)

// Music playback
const (
	// DefaultVolumeMax is the highest accepted volume percentage
	DefaultVolumeMax = 100
	// TrackStatusDelay is how long to wait before reporting the now-playing
	// track after starting playback, so the player has switched over
	TrackStatusDelay = 750 * time.Millisecond
)

// Token masking
const (
	// MinSecretLengthForMasking is the minimum secret length to apply masking
	MinSecretLengthForMasking = 10
	// SecretMaskPrefixLength is the length of prefix to show before masking
	SecretMaskPrefixLength = 4
	// SecretMaskSuffixLength is the length of suffix to show after masking
	SecretMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)
