package handlers

import (
	"errors"
	"kumpisahko/internal/auth"
	"kumpisahko/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler issues admin access tokens
type AuthHandler struct {
	authService *auth.Service
	logger      zerolog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *auth.Service, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Token godoc
// @Summary Issue an admin token
// @Description Exchanges the admin password for a bearer token used by the spot price write endpoints
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "Admin password"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 403 {object} models.ErrorResponse "Admin login disabled"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	token, expiresIn, err := h.authService.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrLoginDisabled):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "admin login disabled"})
		return
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.logger.Warn().Str("ip", c.ClientIP()).Msg("admin login failed")
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to issue admin token")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(expiresIn.Seconds()),
	})
}
