package controller

import (
	"context"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	"fictionchat/internal/pkg/chat/application/usecase"

	"github.com/gin-gonic/gin"
)

// ResetChatController wipes all chat state and re-imports users. Destructive
// and irreversible; intended for test/staging environments only.
type ResetChatController struct {
	verifier *auth.Verifier
	uc       *usecase.ResetChatUseCase
}

func NewResetChatController(verifier *auth.Verifier, uc *usecase.ResetChatUseCase) *ResetChatController {
	return &ResetChatController{verifier: verifier, uc: uc}
}

func (h *ResetChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, h.verifier); !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		count, err := h.uc.Execute(ctx)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "reset", "usersSynced": count})
	}
}
