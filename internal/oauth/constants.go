package oauth

import "time"

// ============================================================================
// Token Cache Configuration
// ============================================================================

const (
	// TokenCacheSize is the maximum number of cached access tokens
	TokenCacheSize = 1000

	// TokenCacheTTL is how long a cached access token stays valid.
	// Writes refresh the entry, so the only staleness window is TTL expiry.
	TokenCacheTTL = 600 * time.Second
)

// ============================================================================
// Exchange Configuration
// ============================================================================

const (
	// ExchangeTimeout bounds the single POST to a provider token endpoint
	ExchangeTimeout = 10 * time.Second
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	// LogMsgLinkURLIssued is logged when a link URL is generated
	LogMsgLinkURLIssued = "Link URL issued"

	// LogMsgAccountLinked is logged when a callback completes successfully
	LogMsgAccountLinked = "Account linked"

	// LogMsgCallbackRejected is logged when a callback fails at any step
	LogMsgCallbackRejected = "Callback rejected"

	// LogMsgAccountUnlinked is logged when a stored link is removed
	LogMsgAccountUnlinked = "Account unlinked"
)

// ============================================================================
// Log Context Keys
// ============================================================================

const (
	// LogKeyProvider is the log key for the provider name
	LogKeyProvider = "provider"

	// LogKeySubjectID is the log key for the subject identifier
	LogKeySubjectID = "subject_id"

	// LogKeyError is the log key for error values
	LogKeyError = "error"
)
