package controller

import (
	"errors"
	"net/http"
	"strings"

	"fictionchat/internal/infrastructure/auth"
	chat "fictionchat/internal/pkg/chat/application/domain"
	"fictionchat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// authenticate extracts the bearer token, verifies it, and returns the caller's
// user id. On failure it writes a 401 response and returns ok=false; every
// credential failure mode gets the same response.
func authenticate(c *gin.Context, verifier *auth.Verifier) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No auth token provided"})
		return "", false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	userID, err := verifier.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid auth token"})
		return "", false
	}
	return userID, true
}

// respondUseCaseError maps use case failures onto the stable REST error shape.
// Persistence causes are logged upstream, never exposed.
func respondUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected persistence error"})
	case errors.Is(err, chat.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
