package controller

import (
	"context"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	"fictionchat/internal/pkg/chat/application/usecase"
	"fictionchat/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateConvoController opens (or finds) the conversation between the caller
// and another user.
type CreateConvoController struct {
	verifier *auth.Verifier
	uc       *usecase.CreateConvoUseCase
}

func NewCreateConvoController(pool *pgxpool.Pool, verifier *auth.Verifier) *CreateConvoController {
	repo := adapter.NewPgChatRepository(pool)
	return &CreateConvoController{verifier: verifier, uc: usecase.NewCreateConvoUseCase(repo)}
}

type createConvoRequest struct {
	ToID string `json:"toId" binding:"required"`
}

func (h *CreateConvoController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		fromID, ok := authenticate(c, h.verifier)
		if !ok {
			return
		}

		var req createConvoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		res, err := h.uc.Execute(ctx, usecase.CreateConvoInput{FromID: fromID, ToID: req.ToID})
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		status := http.StatusOK
		if res.Created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{"conversationId": res.ConversationID})
	}
}
