package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/2dawng/CorsairStream-BE/internal/dto"
	"github.com/2dawng/CorsairStream-BE/internal/service"
	"github.com/gin-gonic/gin"
)

// OAuthHandler handles the Google OAuth flow
type OAuthHandler struct {
	oauthService service.OAuthService
	frontendURL  string
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(oauthService service.OAuthService, frontendURL string) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		frontendURL:  frontendURL,
	}
}

// GoogleLogin returns the provider authorization URL as data. The caller's
// browser performs the redirect.
// @Summary Initiate Google OAuth flow
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthURLResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google/login [get]
func (h *OAuthHandler) GoogleLogin(c *gin.Context) {
	authURL, err := h.oauthService.AuthURL()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Google OAuth client ID not configured",
		})
		return
	}

	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthURL: authURL})
}

// Callback completes the Google OAuth flow and redirects the browser to the
// frontend with the issued tokens and a JSON user summary as query parameters.
// @Summary Handle Google OAuth callback
// @Tags auth
// @Param code query string true "Authorization code"
// @Success 302
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/oauth2/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: "No authorization code found",
		})
		return
	}

	tokens, err := h.oauthService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		var upstreamErr *service.UpstreamError
		switch {
		case errors.As(err, &upstreamErr):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: upstreamErr.Error(),
				Details: upstreamErr.Detail,
			})
		case errors.Is(err, service.ErrMissingEmail):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: "Email not provided by Google",
			})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "Internal server error",
				Message: err.Error(),
			})
		}
		return
	}

	userJSON, err := json.Marshal(dto.UserSummary{
		ID:             tokens.ID,
		Username:       tokens.Username,
		Email:          tokens.Email,
		ProfilePicture: tokens.ProfilePicture,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
		return
	}

	params := url.Values{}
	params.Set("access_token", tokens.AccessToken)
	params.Set("refresh_token", tokens.RefreshToken)
	params.Set("user", string(userJSON))

	c.Redirect(http.StatusFound, h.frontendURL+"?"+params.Encode())
}
