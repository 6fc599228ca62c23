package handler

import (
	"net/http"
	"strings"

	"github.com/falsedev/TechStruck_Go/internal/logger"
	"github.com/falsedev/TechStruck_Go/internal/oauth"
)

// BuildLinkURLRequest is the request body for issuing a new link URL
type BuildLinkURLRequest struct {
	SubjectID int64  `json:"subject_id" validate:"required,gt=0"`
	Provider  string `json:"provider" validate:"required,provider"`
}

// UnlinkRequest is the request body for removing an account link
type UnlinkRequest struct {
	SubjectID int64  `json:"subject_id" validate:"required,gt=0"`
	Provider  string `json:"provider" validate:"required,provider"`
}

// LinkStatusResponse lists the providers currently linked for a subject
type LinkStatusResponse struct {
	SubjectID int64    `json:"subject_id"`
	Providers []string `json:"providers"`
}

// AccessTokenResponse carries a stored provider token back to a trusted caller
type AccessTokenResponse struct {
	Provider    string `json:"provider"`
	AccessToken string `json:"access_token"`
}

// HandleBuildLinkURL issues a fresh authorize URL with an embedded state token
// @Summary Issue a link URL
// @Description Issues a short-lived authorize URL the subject must visit to link a provider account
// @Tags link
// @Accept json
// @Produce json
// @Param request body BuildLinkURLRequest true "Subject and provider"
// @Success 201 {object} oauth.LinkURL
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/link/url [post]
func HandleBuildLinkURL(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuildLinkURLRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Build link URL"); err != nil {
			return
		}

		linkURL, err := svc.BuildLinkURL(r.Context(), req.SubjectID, strings.ToLower(req.Provider))
		if err != nil {
			respondServiceError(w, r, ErrMsgBuildLinkURLFailed, err)
			return
		}

		respondJSON(w, http.StatusCreated, linkURL)
	}
}

// HandleLinkStatus returns the providers linked for a subject
// @Summary Link status
// @Description Lists which providers a subject has linked
// @Tags link
// @Produce json
// @Param subject_id query int true "Subject ID"
// @Success 200 {object} LinkStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/link/status [get]
func HandleLinkStatus(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := GetInt64QueryParam(r, w, "subject_id")
		if !ok {
			return
		}

		providers, err := svc.GetStatus(r.Context(), subjectID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStatusFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, LinkStatusResponse{
			SubjectID: subjectID,
			Providers: providers,
		})
	}
}

// HandleGetToken returns the stored access token for a subject and provider
// @Summary Fetch a stored access token
// @Description Returns the provider access token stored for a subject
// @Tags link
// @Produce json
// @Param subject_id query int true "Subject ID"
// @Param provider query string true "Provider name" Enums(github, stackexchange)
// @Success 200 {object} AccessTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/link/token [get]
func HandleGetToken(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjectID, ok := GetInt64QueryParam(r, w, "subject_id")
		if !ok {
			return
		}
		provider, ok := GetQueryParam(r, w, "provider")
		if !ok {
			return
		}
		provider = strings.ToLower(provider)

		token, err := svc.GetAccessToken(r.Context(), subjectID, provider)
		if err != nil {
			respondServiceError(w, r, "Get access token", err)
			return
		}

		respondJSON(w, http.StatusOK, AccessTokenResponse{
			Provider:    provider,
			AccessToken: token,
		})
	}
}

// HandleUnlink removes a stored account link
// @Summary Unlink a provider account
// @Description Removes the stored account link and its cached token
// @Tags link
// @Accept json
// @Produce json
// @Param request body UnlinkRequest true "Subject and provider"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/link [delete]
func HandleUnlink(svc oauth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UnlinkRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlink"); err != nil {
			return
		}

		log := logger.FromContext(r.Context())
		if err := svc.Unlink(r.Context(), req.SubjectID, strings.ToLower(req.Provider)); err != nil {
			respondServiceError(w, r, ErrMsgUnlinkFailed, err)
			return
		}

		log.Debug("Unlink completed", "subject_id", req.SubjectID, "provider", req.Provider)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgAccountUnlinked})
	}
}
