package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

const (
	// DefaultBaseURL is the Stack Exchange API root
	DefaultBaseURL = "https://api.stackexchange.com/2.2"

	// SiteStackOverflow scopes API calls to stackoverflow.com
	SiteStackOverflow = "stackoverflow"

	requestTimeout = 10 * time.Second
)

// UserInfo is the subset of the /me response the bot cares about
type UserInfo struct {
	DisplayName string `json:"display_name"`
	Reputation  int    `json:"reputation"`
	Link        string `json:"link"`
}

// Client calls the Stack Exchange API on behalf of a linked subject.
// Access-token based methods additionally send the registered app key,
// which raises the request quota.
type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

// NewClient creates a Stack Exchange API client with the app key
func NewClient(key string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		key:     key,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client against a custom API root, used in tests
func NewClientWithBaseURL(key, baseURL string) *Client {
	c := NewClient(key)
	c.baseURL = baseURL
	return c
}

// Me returns the authenticated user's profile on the given site
func (c *Client) Me(ctx context.Context, token, site string) (*UserInfo, error) {
	params := url.Values{
		"access_token": {token},
		"site":         {site},
	}
	if c.key != "" {
		params.Set("key", c.key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Items        []UserInfo `json:"items"`
		ErrorID      int        `json:"error_id"`
		ErrorName    string     `json:"error_name"`
		ErrorMessage string     `json:"error_message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if payload.ErrorID != 0 {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrProviderRejected, payload.ErrorName, payload.ErrorMessage)
	}
	if len(payload.Items) == 0 {
		return nil, fmt.Errorf("%w: no profile in response", domain.ErrProviderRejected)
	}

	return &payload.Items[0], nil
}

// Reputation returns the authenticated user's Stack Overflow reputation
func (c *Client) Reputation(ctx context.Context, token string) (int, error) {
	info, err := c.Me(ctx, token, SiteStackOverflow)
	if err != nil {
		return 0, err
	}
	return info.Reputation, nil
}
