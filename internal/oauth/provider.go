package oauth

import (
	"github.com/falsedev/TechStruck_Go/internal/config"
	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// Response body formats returned by provider token endpoints
const (
	ResponseFormatJSON = "json"
	ResponseFormatForm = "form"
)

// ProviderConfig describes one OAuth2 provider: where to send the user,
// where to exchange the code, and how the token endpoint answers.
type ProviderConfig struct {
	Name           string
	AuthorizeURL   string
	TokenURL       string
	Scope          string
	ResponseFormat string

	ClientID     string
	ClientSecret string
	RedirectURI  string
	Key          string // stackexchange quota key, empty elsewhere
}

// Providers builds the provider registry from application config
func Providers(cfg *config.Config) map[string]ProviderConfig {
	return map[string]ProviderConfig{
		domain.ProviderGithub: {
			Name:           domain.ProviderGithub,
			AuthorizeURL:   "https://github.com/login/oauth/authorize",
			TokenURL:       "https://github.com/login/oauth/access_token",
			Scope:          "gist",
			ResponseFormat: ResponseFormatJSON,
			ClientID:       cfg.Github.ClientID,
			ClientSecret:   cfg.Github.ClientSecret,
			RedirectURI:    cfg.Github.RedirectURI,
		},
		domain.ProviderStackexchange: {
			Name:           domain.ProviderStackexchange,
			AuthorizeURL:   "https://stackoverflow.com/oauth",
			TokenURL:       "https://stackoverflow.com/oauth/access_token",
			Scope:          "no_expiry",
			ResponseFormat: ResponseFormatForm,
			ClientID:       cfg.Stackexchange.ClientID,
			ClientSecret:   cfg.Stackexchange.ClientSecret,
			RedirectURI:    cfg.Stackexchange.RedirectURI,
			Key:            cfg.Stackexchange.Key,
		},
	}
}
