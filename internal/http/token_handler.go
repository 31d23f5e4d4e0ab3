package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brandonleon/carbsmart/internal/i18n"
	"github.com/brandonleon/carbsmart/internal/middleware"
	"github.com/brandonleon/carbsmart/internal/service"
)

// TokenHandler exchanges API keys for bearer tokens.
type TokenHandler struct {
	tokens service.TokenService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokens service.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Issue handles POST /api/auth/token.
//
// @Summary      Exchange an API key for a bearer token
// @Description  The token subject is the label of the presented API key.
// @Tags         Auth
// @Produce      json
// @Param        X-API-Key header string true "API key"
// @Success      200 {object} dto.SuccessResponse{data=dto.TokenResponse} "Token"
// @Failure      401 {object} dto.ErrorResponse "API key required"
// @Failure      503 {object} dto.ErrorResponse "Token signing not configured"
// @Security     ApiKeyAuth
// @Router       /api/auth/token [post]
func (h *TokenHandler) Issue(c *gin.Context) {
	builder := NewResponseBuilder(c)

	subject := strings.TrimPrefix(middleware.GetPrincipal(c), "api-key:")
	resp, err := h.tokens.Issue(subject)
	switch {
	case errors.Is(err, service.ErrTokenSecretMissing):
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
		return
	case err != nil:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(resp)
}
