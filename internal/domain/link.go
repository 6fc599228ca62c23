package domain

import "time"

// Supported OAuth providers
const (
	ProviderGithub        = "github"
	ProviderStackexchange = "stackexchange"
)

// Providers lists all supported provider names
var Providers = []string{ProviderGithub, ProviderStackexchange}

// ValidProvider reports whether name is a supported provider
func ValidProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

// AccountLink binds an external provider access token to a local subject.
// One row per (subject, provider); re-linking replaces the token.
type AccountLink struct {
	SubjectID   int64     `json:"subject_id"`
	Provider    string    `json:"provider"`
	AccessToken string    `json:"access_token"`
	LinkedAt    time.Time `json:"linked_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
