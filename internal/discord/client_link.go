package discord

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// LinkURLResult is the response from RequestLinkURL
type LinkURLResult struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

// RequestLinkURL asks the API for a fresh authorize URL for the subject
func (c *APIClient) RequestLinkURL(discordID, provider string) (*LinkURLResult, error) {
	subjectID, err := parseSubjectID(discordID)
	if err != nil {
		return nil, err
	}

	req := map[string]interface{}{
		"subject_id": subjectID,
		"provider":   provider,
	}

	var result LinkURLResult
	if err := c.doRequestAndParse(http.MethodPost, "/api/v1/link/url", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLinkStatus returns which providers the subject has linked
func (c *APIClient) GetLinkStatus(discordID string) ([]string, error) {
	subjectID, err := parseSubjectID(discordID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v1/link/status?subject_id=%d", subjectID)
	var result struct {
		Providers []string `json:"providers"`
	}
	if err := c.doRequestAndParse(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Providers, nil
}

// GetAccessToken fetches the stored provider token for the subject,
// reading through the bot-side cache.
func (c *APIClient) GetAccessToken(discordID, provider string) (string, error) {
	if token, ok := c.tokens.Get(discordID, provider); ok {
		return token, nil
	}

	subjectID, err := parseSubjectID(discordID)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("subject_id", strconv.FormatInt(subjectID, 10))
	params.Set("provider", provider)

	var result struct {
		Provider    string `json:"provider"`
		AccessToken string `json:"access_token"`
	}
	if err := c.doRequestAndParse(http.MethodGet, "/api/v1/link/token?"+params.Encode(), nil, &result); err != nil {
		return "", err
	}

	c.tokens.Set(discordID, provider, result.AccessToken)
	return result.AccessToken, nil
}

// Unlink removes the stored account link for the subject
func (c *APIClient) Unlink(discordID, provider string) error {
	subjectID, err := parseSubjectID(discordID)
	if err != nil {
		return err
	}

	req := map[string]interface{}{
		"subject_id": subjectID,
		"provider":   provider,
	}

	if err := c.doRequestAndParse(http.MethodDelete, "/api/v1/link", req, nil); err != nil {
		return err
	}

	c.tokens.Invalidate(discordID, provider)
	return nil
}

// parseSubjectID converts a Discord snowflake into the numeric subject ID
// the API works with.
func parseSubjectID(discordID string) (int64, error) {
	subjectID, err := strconv.ParseInt(discordID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discord ID %q: %w", discordID, err)
	}
	return subjectID, nil
}
