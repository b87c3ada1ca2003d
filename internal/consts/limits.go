package consts

import "time"

// Input limits
const (
	// MaxInputLength is the maximum number of runes the keypad accepts
	MaxInputLength = 256
	// MaxRequestBytes caps JSON and websocket payloads in the web front end
	MaxRequestBytes = 4 * 1024
	// MaxLineBytes caps a single line read in pipe mode
	MaxLineBytes = 64 * 1024
)

// History sizes
const (
	// DefaultHistorySize is the number of evaluated expressions kept in memory
	DefaultHistorySize = 50
	// MaxHistorySize bounds the configured history size
	MaxHistorySize = 1000
)

// Web front end
const (
	// DefaultListenAddr is the default address for "serve"
	DefaultListenAddr = "localhost:8937"
	// ServerReadTimeout bounds reading a request
	ServerReadTimeout = 10 * time.Second
	// ServerWriteTimeout bounds writing a response
	ServerWriteTimeout = 10 * time.Second
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 5 * time.Second
	// WebSocketPongWait is how long a websocket may stay silent
	WebSocketPongWait = 60 * time.Second
)

// ConfigReloadDebounce coalesces bursts of config file events
const ConfigReloadDebounce = 200 * time.Millisecond
