package constants

import "time"

// Discord constants
const (
	// DiscordMaxMessageLength is the maximum character limit for Discord messages
	DiscordMaxMessageLength = 2000
	// DiscordChunkDelay spaces out multi-part replies to stay under rate limits
	DiscordChunkDelay = 100 * time.Millisecond
	// DiscordProcessTimeout bounds one message's extraction and graph writes
	DiscordProcessTimeout = 30 * time.Second
)

// Server constants
const (
	// ShutdownTimeout is how long the HTTP server waits for in-flight requests
	ShutdownTimeout = 5 * time.Second
)
