package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

// Exchanger swaps a provider authorization code for an access token.
// A single attempt is made; transient failures surface as domain.ErrNetwork
// and the caller restarts the whole linking flow.
type Exchanger interface {
	Exchange(ctx context.Context, provider ProviderConfig, code string) (string, error)
}

type httpExchanger struct {
	client *http.Client
}

// NewExchanger creates an Exchanger backed by a timeout-bounded HTTP client
func NewExchanger() Exchanger {
	return &httpExchanger{
		client: &http.Client{Timeout: ExchangeTimeout},
	}
}

// NewExchangerWithClient creates an Exchanger with a caller-supplied client.
// Used by tests to point at a stub token endpoint.
func NewExchangerWithClient(client *http.Client) Exchanger {
	return &httpExchanger{client: client}
}

// Exchange performs the POST to the provider token endpoint and normalizes
// the provider-specific response to a bare access token string.
func (e *httpExchanger) Exchange(ctx context.Context, provider ProviderConfig, code string) (string, error) {
	form := url.Values{
		"client_id":     {provider.ClientID},
		"client_secret": {provider.ClientSecret},
		"redirect_uri":  {provider.RedirectURI},
		"code":          {code},
	}
	if provider.Key != "" {
		form.Set("key", provider.Key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if provider.ResponseFormat == ResponseFormatJSON {
		// Github answers form-encoded unless asked for JSON explicitly
		req.Header.Set("Accept", "application/json")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExchangeResponseBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading exchange response: %s", domain.ErrNetwork, err)
	}

	switch provider.ResponseFormat {
	case ResponseFormatForm:
		return parseFormExchangeResponse(body)
	default:
		return parseJSONExchangeResponse(body)
	}
}

const maxExchangeResponseBytes = 1 << 16

func parseJSONExchangeResponse(body []byte) (string, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: unparseable response", domain.ErrProviderRejected)
	}

	if token, ok := payload["access_token"].(string); ok && token != "" {
		return token, nil
	}
	return "", rejectionError(stringField(payload, "error"), stringField(payload, "error_description"))
}

func parseFormExchangeResponse(body []byte) (string, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return "", fmt.Errorf("%w: unparseable response", domain.ErrProviderRejected)
	}

	if token := values.Get("access_token"); token != "" {
		return token, nil
	}
	return "", rejectionError(values.Get("error"), values.Get("error_description"))
}

// rejectionError wraps provider-reported error fields so they reach the user
func rejectionError(code, description string) error {
	switch {
	case code != "" && description != "":
		return fmt.Errorf("%w: %s: %s", domain.ErrProviderRejected, code, description)
	case code != "":
		return fmt.Errorf("%w: %s", domain.ErrProviderRejected, code)
	default:
		return domain.ErrProviderRejected
	}
}

func stringField(payload map[string]interface{}, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}
