package controller

import (
	"context"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	"fictionchat/internal/pkg/chat/application/usecase"
	"fictionchat/internal/pkg/chat/delivery"
	"fictionchat/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SendMessageController handles the send-message endpoint only (one controller per endpoint)
type SendMessageController struct {
	verifier   *auth.Verifier
	uc         *usecase.SendMessageUseCase
	dispatcher *delivery.Dispatcher
}

func NewSendMessageController(pool *pgxpool.Pool, verifier *auth.Verifier, dispatcher *delivery.Dispatcher) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{
		verifier:   verifier,
		uc:         usecase.NewSendMessageUseCase(repo),
		dispatcher: dispatcher,
	}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	ToID    string `json:"toId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Handle persists the message and then attempts best-effort live delivery to
// the recipient. The caller receives the persisted message as acknowledgment.
func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, ok := authenticate(c, h.verifier)
		if !ok {
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		msg, err := h.uc.Execute(ctx, usecase.SendMessageInput{
			SenderID: senderID,
			ToID:     req.ToID,
			Content:  req.Content,
		})
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		h.dispatcher.Deliver(msg, req.ToID)
		c.JSON(http.StatusCreated, msg)
	}
}
