package discord

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLinkURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/link/url", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var body struct {
			SubjectID int64  `json:"subject_id"`
			Provider  string `json:"provider"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(80351110224678912), body.SubjectID)
		assert.Equal(t, "github", body.Provider)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://github.com/login/oauth/authorize?state=s","expires_in":120}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "test-key")
	result, err := client.RequestLinkURL("80351110224678912", "github")
	require.NoError(t, err)
	assert.Contains(t, result.URL, "authorize")
	assert.Equal(t, 120, result.ExpiresIn)
}

func TestRequestLinkURL_InvalidSnowflake(t *testing.T) {
	client := NewAPIClient("http://unused", "test-key")
	_, err := client.RequestLinkURL("not-a-number", "github")
	assert.Error(t, err)
}

func TestGetLinkStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/link/status", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("subject_id"))
		w.Write([]byte(`{"subject_id":42,"providers":["github"]}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "test-key")
	providers, err := client.GetLinkStatus("42")
	require.NoError(t, err)
	assert.Equal(t, []string{"github"}, providers)
}

func TestGetAccessToken_CachesResult(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"provider":"github","access_token":"gho_token"}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "test-key")

	for range 3 {
		token, err := client.GetAccessToken("42", "github")
		require.NoError(t, err)
		assert.Equal(t, "gho_token", token)
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestGetAccessToken_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"No account is linked for that provider"}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "test-key")
	_, err := client.GetAccessToken("42", "github")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No account is linked")
}

func TestUnlink_InvalidatesCachedToken(t *testing.T) {
	var tokenCalls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/link/token":
			atomic.AddInt64(&tokenCalls, 1)
			w.Write([]byte(`{"provider":"github","access_token":"gho_token"}`))
		case "/api/v1/link":
			assert.Equal(t, http.MethodDelete, r.Method)
			w.Write([]byte(`{"message":"Account unlinked"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, "test-key")

	_, err := client.GetAccessToken("42", "github")
	require.NoError(t, err)

	require.NoError(t, client.Unlink("42", "github"))

	// Next fetch goes back to the API
	_, err = client.GetAccessToken("42", "github")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&tokenCalls))
}
