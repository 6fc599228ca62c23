package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

const (
	// DefaultBaseURL is the GitHub REST API root
	DefaultBaseURL = "https://api.github.com"

	requestTimeout = 10 * time.Second
)

// GistFile is the content of a single file inside a gist
type GistFile struct {
	Content string `json:"content"`
}

// Gist is the subset of the gist response the bot cares about
type Gist struct {
	ID      string              `json:"id"`
	HTMLURL string              `json:"html_url"`
	Files   map[string]GistFile `json:"files"`
}

// User is the authenticated GitHub user
type User struct {
	Login string `json:"login"`
}

// Client calls the GitHub API on behalf of a linked subject. The access
// token is passed per call, not stored on the client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a GitHub API client
func NewClient() *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// NewClientWithBaseURL creates a client against a custom API root, used in tests
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// CreateGist creates a secret gist with the given files and returns it
func (c *Client) CreateGist(ctx context.Context, token string, files map[string]string) (*Gist, error) {
	body := struct {
		Files  map[string]GistFile `json:"files"`
		Public bool                `json:"public"`
	}{
		Files:  make(map[string]GistFile, len(files)),
		Public: false,
	}
	for name, content := range files {
		body.Files[name] = GistFile{Content: content}
	}

	var gist Gist
	if err := c.do(ctx, token, http.MethodPost, "/gists", body, &gist); err != nil {
		return nil, err
	}
	return &gist, nil
}

// GetAuthenticatedUser returns the user the token belongs to
func (c *Client) GetAuthenticatedUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, token, http.MethodGet, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, token, method, endpoint string, body, out interface{}) error {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("%w: %s (status %d)", domain.ErrProviderRejected, errResp.Message, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", domain.ErrProviderRejected, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
