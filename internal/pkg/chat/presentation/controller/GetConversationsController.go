package controller

import (
	"context"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	chat "fictionchat/internal/pkg/chat/application/domain"
	"fictionchat/internal/pkg/chat/application/usecase"
	"fictionchat/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetConversationsController lists the caller's conversations (one controller per endpoint)
type GetConversationsController struct {
	verifier *auth.Verifier
	uc       *usecase.GetConversationsUseCase
}

func NewGetConversationsController(pool *pgxpool.Pool, verifier *auth.Verifier) *GetConversationsController {
	repo := adapter.NewPgChatRepository(pool)
	return &GetConversationsController{verifier: verifier, uc: usecase.NewGetConversationsUseCase(repo)}
}

func (h *GetConversationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, h.verifier)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		summaries, err := h.uc.Execute(ctx, userID)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		if summaries == nil {
			summaries = []chat.ConversationSummary{}
		}
		c.JSON(http.StatusOK, summaries)
	}
}
