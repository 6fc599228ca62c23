package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Link operation error messages
	ErrMsgBuildLinkURLFailed = "Failed to build link URL"
	ErrMsgGetStatusFailed    = "Failed to get link status"
	ErrMsgUnlinkFailed       = "Failed to unlink account"
)

// Success messages for API responses
const (
	MsgAccountUnlinked = "Account unlinked"
)
