package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/falsedev/TechStruck_Go/internal/domain"
)

func callbackRouter(svc *MockOAuthService) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/oauth/{provider}", HandleOAuthCallback(svc))
	return r
}

func TestHandleOAuthCallback_Success(t *testing.T) {
	svc := new(MockOAuthService)
	svc.On("HandleCallback", mock.Anything, "github", "abc", "state123").Return(&domain.AccountLink{
		SubjectID:   42,
		Provider:    "github",
		AccessToken: "gho_token",
		LinkedAt:    time.Now(),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?code=abc&state=state123", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Account linked")
	assert.Contains(t, w.Body.String(), "github")
	svc.AssertExpectations(t)
}

func TestHandleOAuthCallback_ProviderErrorPassthrough(t *testing.T) {
	svc := new(MockOAuthService)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?error=access_denied&error_description=The+user+denied+access", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "access_denied")
	assert.Contains(t, w.Body.String(), "The user denied access")
	svc.AssertNotCalled(t, "HandleCallback")
}

func TestHandleOAuthCallback_MissingCode(t *testing.T) {
	svc := new(MockOAuthService)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?state=state123", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "HandleCallback")
}

func TestHandleOAuthCallback_MissingState(t *testing.T) {
	svc := new(MockOAuthService)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?code=abc", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "HandleCallback")
}

func TestHandleOAuthCallback_ExpiredState(t *testing.T) {
	svc := new(MockOAuthService)
	svc.On("HandleCallback", mock.Anything, "github", "abc", "stale").Return(nil, domain.ErrStateExpired)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?code=abc&state=stale", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgExpiredLinkError)
}

func TestHandleOAuthCallback_TamperedState(t *testing.T) {
	svc := new(MockOAuthService)
	svc.On("HandleCallback", mock.Anything, "github", "abc", "forged").Return(nil, domain.ErrInvalidSignature)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?code=abc&state=forged", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidStateError)
}

func TestHandleOAuthCallback_ExchangeRejected(t *testing.T) {
	svc := new(MockOAuthService)
	svc.On("HandleCallback", mock.Anything, "github", "used", "state123").Return(nil, domain.ErrProviderRejected)

	req := httptest.NewRequest(http.MethodGet, "/oauth/github?code=used&state=state123", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleOAuthCallback_UnknownProvider(t *testing.T) {
	svc := new(MockOAuthService)
	svc.On("HandleCallback", mock.Anything, "gitlab", "abc", "state123").Return(nil, domain.ErrInvalidProvider)

	req := httptest.NewRequest(http.MethodGet, "/oauth/gitlab?code=abc&state=state123", nil)
	w := httptest.NewRecorder()

	callbackRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
