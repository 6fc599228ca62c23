package config

// Default values for optional configuration
const (
	// DefaultStateTokenTTLSeconds is how long a link URL stays valid.
	// Kept short so a leaked URL is useless quickly.
	DefaultStateTokenTTLSeconds = 120

	// DefaultPort is the HTTP listen port
	DefaultPort = 8080
)
