package oauth

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/falsedev/TechStruck_Go/internal/domain"
	"github.com/falsedev/TechStruck_Go/internal/statetoken"
)

// stubExchanger returns a fixed token or error without touching the network
type stubExchanger struct {
	token string
	err   error

	mu    sync.Mutex
	calls int
}

func (s *stubExchanger) Exchange(_ context.Context, _ ProviderConfig, _ string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func testProviders() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		domain.ProviderGithub: {
			Name:           domain.ProviderGithub,
			AuthorizeURL:   "https://github.com/login/oauth/authorize",
			TokenURL:       "https://github.com/login/oauth/access_token",
			Scope:          "gist",
			ResponseFormat: ResponseFormatJSON,
			ClientID:       "gh-client",
			ClientSecret:   "gh-secret",
			RedirectURI:    "https://example.com/oauth/github",
		},
		domain.ProviderStackexchange: {
			Name:           domain.ProviderStackexchange,
			AuthorizeURL:   "https://stackoverflow.com/oauth",
			TokenURL:       "https://stackoverflow.com/oauth/access_token",
			Scope:          "no_expiry",
			ResponseFormat: ResponseFormatForm,
			ClientID:       "se-client",
			ClientSecret:   "se-secret",
			RedirectURI:    "https://example.com/oauth/stackexchange",
			Key:            "se-key",
		},
	}
}

func newTestService(exchanger Exchanger, repo *FakeAccountLinks) (Service, *statetoken.Codec) {
	codec := statetoken.NewCodec("test-secret")
	svc := NewService(codec, exchanger, repo, testProviders(), 120*time.Second)
	return svc, codec
}

func extractState(t *testing.T, linkURL string) string {
	t.Helper()
	parsed, err := url.Parse(linkURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestBuildLinkURL(t *testing.T) {
	svc, _ := newTestService(&stubExchanger{token: "tok"}, NewFakeAccountLinks())

	link, err := svc.BuildLinkURL(context.Background(), 42, domain.ProviderGithub)
	require.NoError(t, err)

	parsed, err := url.Parse(link.URL)
	require.NoError(t, err)

	assert.Equal(t, "github.com", parsed.Host)
	q := parsed.Query()
	assert.Equal(t, "gh-client", q.Get("client_id"))
	assert.Equal(t, "gist", q.Get("scope"))
	assert.Equal(t, "https://example.com/oauth/github", q.Get("redirect_uri"))
	assert.NotEmpty(t, q.Get("state"))
	assert.Equal(t, 120, link.ExpiresIn)
}

func TestBuildLinkURL_UnknownProvider(t *testing.T) {
	svc, _ := newTestService(&stubExchanger{}, NewFakeAccountLinks())

	_, err := svc.BuildLinkURL(context.Background(), 42, "gitlab")
	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}

// End-to-end: issue link URL, redirect back with the state, token stored
func TestHandleCallback_Success(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, _ := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	link, err := svc.BuildLinkURL(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	state := extractState(t, link.URL)

	result, err := svc.HandleCallback(ctx, domain.ProviderGithub, "abc", state)
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.SubjectID)
	assert.Equal(t, "tok1", result.AccessToken)

	stored, err := repo.Get(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "tok1", stored.AccessToken)
}

func TestHandleCallback_ExpiredState(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, codec := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	// 121 seconds past expiry
	state, err := codec.Issue(42, -121*time.Second)
	require.NoError(t, err)

	_, err = svc.HandleCallback(ctx, domain.ProviderGithub, "abc", state)
	assert.ErrorIs(t, err, domain.ErrStateExpired)

	_, err = repo.Get(ctx, 42, domain.ProviderGithub)
	assert.ErrorIs(t, err, domain.ErrNotLinked)
}

func TestHandleCallback_TamperedState(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, _ := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	foreign := statetoken.NewCodec("other-secret")
	state, err := foreign.Issue(42, time.Minute)
	require.NoError(t, err)

	_, err = svc.HandleCallback(ctx, domain.ProviderGithub, "abc", state)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	_, err = repo.Get(ctx, 42, domain.ProviderGithub)
	assert.ErrorIs(t, err, domain.ErrNotLinked)
}

func TestHandleCallback_ProviderRejected(t *testing.T) {
	repo := NewFakeAccountLinks()
	exchanger := &stubExchanger{err: fmt.Errorf("%w: bad_verification_code", domain.ErrProviderRejected)}
	svc, _ := newTestService(exchanger, repo)
	ctx := context.Background()

	// Existing link must survive a rejected re-link attempt
	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{
		SubjectID: 42, Provider: domain.ProviderGithub, AccessToken: "old-token",
	}))

	link, err := svc.BuildLinkURL(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)

	_, err = svc.HandleCallback(ctx, domain.ProviderGithub, "abc", extractState(t, link.URL))
	assert.ErrorIs(t, err, domain.ErrProviderRejected)

	stored, err := repo.Get(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "old-token", stored.AccessToken)
}

func TestHandleCallback_StoreUnavailable(t *testing.T) {
	repo := NewFakeAccountLinks()
	repo.FailWrites = true
	svc, _ := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	link, err := svc.BuildLinkURL(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)

	_, err = svc.HandleCallback(ctx, domain.ProviderGithub, "abc", extractState(t, link.URL))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestHandleCallback_UnknownProvider(t *testing.T) {
	svc, codec := newTestService(&stubExchanger{token: "tok1"}, NewFakeAccountLinks())

	state, err := codec.Issue(42, time.Minute)
	require.NoError(t, err)

	_, err = svc.HandleCallback(context.Background(), "gitlab", "abc", state)
	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}

func TestUpsert_Idempotent(t *testing.T) {
	repo := NewFakeAccountLinks()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 1, Provider: domain.ProviderGithub, AccessToken: "t1"}))
	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 1, Provider: domain.ProviderGithub, AccessToken: "t2"}))

	stored, err := repo.Get(ctx, 1, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "t2", stored.AccessToken)

	providers, err := repo.ListProviders(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ProviderGithub}, providers)
}

// Concurrent re-links for the same key must not lose the final write
func TestUpsert_ConcurrentLastWriterWins(t *testing.T) {
	repo := NewFakeAccountLinks()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Upsert(ctx, &domain.AccountLink{
				SubjectID:   7,
				Provider:    domain.ProviderGithub,
				AccessToken: fmt.Sprintf("tok-%d", i),
			})
		}(i)
	}
	wg.Wait()

	// Whatever interleaving happened, the final sequential write sticks
	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 7, Provider: domain.ProviderGithub, AccessToken: "final"}))

	stored, err := repo.Get(ctx, 7, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "final", stored.AccessToken)
}

func TestGetAccessToken_ReadThroughCache(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, _ := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 42, Provider: domain.ProviderGithub, AccessToken: "tok1"}))

	token, err := svc.GetAccessToken(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)

	// Second read is served from cache even if the store row changes
	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 42, Provider: domain.ProviderGithub, AccessToken: "changed-behind-cache"}))

	token, err = svc.GetAccessToken(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)
}

func TestGetAccessToken_NotLinked(t *testing.T) {
	svc, _ := newTestService(&stubExchanger{}, NewFakeAccountLinks())

	_, err := svc.GetAccessToken(context.Background(), 42, domain.ProviderGithub)
	assert.ErrorIs(t, err, domain.ErrNotLinked)
}

// Re-linking through a callback must replace the cached token, not serve stale
func TestHandleCallback_RefreshesCache(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, _ := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	link, err := svc.BuildLinkURL(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	_, err = svc.HandleCallback(ctx, domain.ProviderGithub, "abc", extractState(t, link.URL))
	require.NoError(t, err)

	token, err := svc.GetAccessToken(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "tok1", token)

	// Re-link with a new token
	svc2 := svc.(*service)
	svc2.exchanger = &stubExchanger{token: "tok2"}

	link, err = svc.BuildLinkURL(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	_, err = svc.HandleCallback(ctx, domain.ProviderGithub, "def", extractState(t, link.URL))
	require.NoError(t, err)

	token, err = svc.GetAccessToken(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)
	assert.Equal(t, "tok2", token)
}

func TestUnlink(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, _ := newTestService(&stubExchanger{token: "tok1"}, repo)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 42, Provider: domain.ProviderGithub, AccessToken: "tok1"}))

	// Warm the cache, then unlink
	_, err := svc.GetAccessToken(ctx, 42, domain.ProviderGithub)
	require.NoError(t, err)

	require.NoError(t, svc.Unlink(ctx, 42, domain.ProviderGithub))

	_, err = svc.GetAccessToken(ctx, 42, domain.ProviderGithub)
	assert.ErrorIs(t, err, domain.ErrNotLinked)

	err = svc.Unlink(ctx, 42, domain.ProviderGithub)
	assert.ErrorIs(t, err, domain.ErrNotLinked)
}

func TestGetStatus(t *testing.T) {
	repo := NewFakeAccountLinks()
	svc, _ := newTestService(&stubExchanger{}, repo)
	ctx := context.Background()

	providers, err := svc.GetStatus(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, providers)

	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 42, Provider: domain.ProviderStackexchange, AccessToken: "a"}))
	require.NoError(t, repo.Upsert(ctx, &domain.AccountLink{SubjectID: 42, Provider: domain.ProviderGithub, AccessToken: "b"}))

	providers, err = svc.GetStatus(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ProviderGithub, domain.ProviderStackexchange}, providers)
}
