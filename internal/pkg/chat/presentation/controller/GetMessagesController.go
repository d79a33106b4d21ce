package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"fictionchat/internal/infrastructure/auth"
	chat "fictionchat/internal/pkg/chat/application/domain"
	"fictionchat/internal/pkg/chat/application/usecase"
	"fictionchat/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetMessagesController returns conversation history (one controller per endpoint)
type GetMessagesController struct {
	verifier *auth.Verifier
	uc       *usecase.GetMessagesUseCase
}

func NewGetMessagesController(pool *pgxpool.Pool, verifier *auth.Verifier) *GetMessagesController {
	repo := adapter.NewPgChatRepository(pool)
	return &GetMessagesController{verifier: verifier, uc: usecase.NewGetMessagesUseCase(repo)}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := authenticate(c, h.verifier)
		if !ok {
			return
		}

		conversationID, err := strconv.ParseInt(c.Param("conversationId"), 10, 64)
		if err != nil || conversationID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId must be a positive integer"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.uc.Execute(ctx, usecase.GetMessagesInput{
			ConversationID: conversationID,
			UserID:         userID,
		})
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		if msgs == nil {
			msgs = []chat.Message{}
		}
		c.JSON(http.StatusOK, msgs)
	}
}
