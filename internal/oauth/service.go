package oauth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/falsedev/TechStruck_Go/internal/domain"
	"github.com/falsedev/TechStruck_Go/internal/logger"
	"github.com/falsedev/TechStruck_Go/internal/metrics"
	"github.com/falsedev/TechStruck_Go/internal/repository"
	"github.com/falsedev/TechStruck_Go/internal/statetoken"
)

// Service orchestrates the OAuth linking flow: issuing link URLs with an
// embedded state token, and handling provider callbacks.
type Service interface {
	// BuildLinkURL issues a short-lived state token and composes the
	// provider authorize URL for the subject to visit.
	BuildLinkURL(ctx context.Context, subjectID int64, provider string) (*LinkURL, error)

	// HandleCallback verifies the state token from a provider redirect,
	// exchanges the authorization code, and persists the account link.
	// Any step failing rejects the whole callback; the subject must
	// request a fresh link URL.
	HandleCallback(ctx context.Context, provider, code, state string) (*domain.AccountLink, error)

	// GetAccessToken returns the stored token for (subject, provider),
	// read through a short-lived cache.
	GetAccessToken(ctx context.Context, subjectID int64, provider string) (string, error)

	// GetStatus returns the providers currently linked for a subject
	GetStatus(ctx context.Context, subjectID int64) ([]string, error)

	// Unlink removes a stored account link
	Unlink(ctx context.Context, subjectID int64, provider string) error
}

// LinkURL is an authorize URL plus how long it stays valid
type LinkURL struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

type service struct {
	codec     *statetoken.Codec
	exchanger Exchanger
	repo      repository.AccountLinks
	providers map[string]ProviderConfig
	stateTTL  time.Duration
	cache     *tokenCache
}

// NewService creates a new linking service
func NewService(codec *statetoken.Codec, exchanger Exchanger, repo repository.AccountLinks, providers map[string]ProviderConfig, stateTTL time.Duration) Service {
	return &service{
		codec:     codec,
		exchanger: exchanger,
		repo:      repo,
		providers: providers,
		stateTTL:  stateTTL,
		cache:     newTokenCache(TokenCacheSize, TokenCacheTTL),
	}
}

func (s *service) BuildLinkURL(ctx context.Context, subjectID int64, provider string) (*LinkURL, error) {
	log := logger.FromContext(ctx)

	p, ok := s.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}

	state, err := s.codec.Issue(subjectID, s.stateTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue state token: %w", err)
	}

	authorizeURL := p.AuthorizeURL + "?" + url.Values{
		"client_id":    {p.ClientID},
		"scope":        {p.Scope},
		"redirect_uri": {p.RedirectURI},
		"state":        {state},
	}.Encode()

	metrics.LinkURLsIssued.WithLabelValues(provider).Inc()
	log.Info(LogMsgLinkURLIssued, LogKeyProvider, provider, LogKeySubjectID, subjectID)

	return &LinkURL{
		URL:       authorizeURL,
		ExpiresIn: int(s.stateTTL.Seconds()),
	}, nil
}

func (s *service) HandleCallback(ctx context.Context, provider, code, state string) (*domain.AccountLink, error) {
	log := logger.FromContext(ctx)

	p, ok := s.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}

	// Received -> StateVerified
	subjectID, err := s.codec.Verify(state)
	if err != nil {
		metrics.CallbacksTotal.WithLabelValues(provider, metrics.OutcomeBadState).Inc()
		log.Warn(LogMsgCallbackRejected, LogKeyProvider, provider, LogKeyError, err)
		return nil, err
	}

	// StateVerified -> TokenExchanged
	start := time.Now()
	accessToken, err := s.exchanger.Exchange(ctx, p, code)
	metrics.ExchangeDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CallbacksTotal.WithLabelValues(provider, metrics.OutcomeExchangeFailed).Inc()
		log.Warn(LogMsgCallbackRejected, LogKeyProvider, provider, LogKeySubjectID, subjectID, LogKeyError, err)
		return nil, err
	}

	// TokenExchanged -> Persisted
	link := &domain.AccountLink{
		SubjectID:   subjectID,
		Provider:    provider,
		AccessToken: accessToken,
		LinkedAt:    time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Upsert(ctx, link); err != nil {
		metrics.CallbacksTotal.WithLabelValues(provider, metrics.OutcomeStoreFailed).Inc()
		log.Error(LogMsgCallbackRejected, LogKeyProvider, provider, LogKeySubjectID, subjectID, LogKeyError, err)
		return nil, err
	}

	// Keep the read-through cache in step with the write
	s.cache.Set(subjectID, provider, accessToken)

	metrics.CallbacksTotal.WithLabelValues(provider, metrics.OutcomePersisted).Inc()
	log.Info(LogMsgAccountLinked, LogKeyProvider, provider, LogKeySubjectID, subjectID)
	return link, nil
}

func (s *service) GetAccessToken(ctx context.Context, subjectID int64, provider string) (string, error) {
	if !domain.ValidProvider(provider) {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}

	if token, ok := s.cache.Get(subjectID, provider); ok {
		metrics.TokenCacheHits.Inc()
		return token, nil
	}
	metrics.TokenCacheMisses.Inc()

	link, err := s.repo.Get(ctx, subjectID, provider)
	if err != nil {
		return "", err
	}

	s.cache.Set(subjectID, provider, link.AccessToken)
	return link.AccessToken, nil
}

func (s *service) GetStatus(ctx context.Context, subjectID int64) ([]string, error) {
	return s.repo.ListProviders(ctx, subjectID)
}

func (s *service) Unlink(ctx context.Context, subjectID int64, provider string) error {
	log := logger.FromContext(ctx)

	if !domain.ValidProvider(provider) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidProvider, provider)
	}

	if err := s.repo.Delete(ctx, subjectID, provider); err != nil {
		return err
	}
	s.cache.Invalidate(subjectID, provider)

	log.Info(LogMsgAccountUnlinked, LogKeyProvider, provider, LogKeySubjectID, subjectID)
	return nil
}
