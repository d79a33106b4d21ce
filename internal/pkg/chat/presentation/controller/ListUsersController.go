package controller

import (
	"context"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	chat "fictionchat/internal/pkg/chat/application/domain"
	"fictionchat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ListUsersController returns every user the caller can start chatting with.
type ListUsersController struct {
	verifier *auth.Verifier
	uc       *usecase.ListUsersUseCase
}

func NewListUsersController(verifier *auth.Verifier, uc *usecase.ListUsersUseCase) *ListUsersController {
	return &ListUsersController{verifier: verifier, uc: uc}
}

func (h *ListUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, h.verifier)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		users, err := h.uc.Execute(ctx, userID)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		if users == nil {
			users = []chat.User{}
		}
		c.JSON(http.StatusOK, users)
	}
}
