package handler

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/falsedev/TechStruck_Go/internal/logger"
	"github.com/falsedev/TechStruck_Go/internal/oauth"
)

// successPage is rendered in the subject's browser after a provider callback
// completes. It is the only HTML this service serves.
var successPage = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head><title>Account Linked</title></head>
<body>
<h1>Account linked</h1>
<p>Your {{.Provider}} account has been linked. You can close this tab and return to Discord.</p>
</body>
</html>
`))

// CallbackErrorResponse mirrors the provider's rejection back to the browser
type CallbackErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// HandleOAuthCallback handles the provider redirect at the end of the
// authorize flow. This endpoint is public: the only credential it trusts is
// the signed state token carried in the query string.
// @Summary OAuth provider callback
// @Description Completes the linking flow after the provider redirects back
// @Tags oauth
// @Param provider path string true "Provider name" Enums(github, stackexchange)
// @Param code query string false "Authorization code from the provider"
// @Param state query string true "Signed state token"
// @Param error query string false "Provider error code"
// @Success 200 {string} string "HTML success page"
// @Failure 400 {object} CallbackErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /oauth/{provider} [get]
func HandleOAuthCallback(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		provider := strings.ToLower(chi.URLParam(r, "provider"))

		// Providers report user denial and misconfiguration via error
		// query params instead of a code. Mirror them back.
		if providerErr := r.URL.Query().Get("error"); providerErr != "" {
			log.Warn("Provider returned error on callback", "provider", provider, "error", providerErr)
			respondJSON(w, http.StatusBadRequest, CallbackErrorResponse{
				Error:            providerErr,
				ErrorDescription: r.URL.Query().Get("error_description"),
			})
			return
		}

		code, ok := GetQueryParam(r, w, "code")
		if !ok {
			return
		}
		state, ok := GetQueryParam(r, w, "state")
		if !ok {
			return
		}

		link, err := svc.HandleCallback(r.Context(), provider, code, state)
		if err != nil {
			status, message := mapServiceErrorToUserMessage(err)
			respondError(w, status, message)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := successPage.Execute(w, map[string]string{"Provider": link.Provider}); err != nil {
			log.Error("Failed to render success page", "error", err)
		}
	}
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(fmt.Sprintf("%s failed", opName), "error", err)

	status, message := mapServiceErrorToUserMessage(err)
	respondError(w, status, message)
}
