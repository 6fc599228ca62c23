package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

func TestCreateGist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gists", r.URL.Path)
		assert.Equal(t, "Bearer gho_token", r.Header.Get("Authorization"))

		var body struct {
			Files  map[string]GistFile `json:"files"`
			Public bool                `json:"public"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.False(t, body.Public)
		assert.Equal(t, "print('hi')", body.Files["main.py"].Content)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"g1","html_url":"https://gist.github.com/u/g1","files":{"main.py":{"content":"print('hi')"}}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	gist, err := client.CreateGist(context.Background(), "gho_token", map[string]string{"main.py": "print('hi')"})
	require.NoError(t, err)
	assert.Equal(t, "https://gist.github.com/u/g1", gist.HTMLURL)
}

func TestCreateGist_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.CreateGist(context.Background(), "stale", map[string]string{"a.txt": "x"})
	require.ErrorIs(t, err, domain.ErrProviderRejected)
	assert.Contains(t, err.Error(), "Bad credentials")
}

func TestGetAuthenticatedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	user, err := client.GetAuthenticatedUser(context.Background(), "gho_token")
	require.NoError(t, err)
	assert.Equal(t, "octocat", user.Login)
}

func TestCreateGist_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClientWithBaseURL(srv.URL)
	_, err := client.CreateGist(context.Background(), "gho_token", map[string]string{"a.txt": "x"})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}
