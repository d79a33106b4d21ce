package controller

import (
	"context"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	qport "fictionchat/internal/infrastructure/queue/port"
	"fictionchat/internal/pkg/chat/application/task"

	"github.com/gin-gonic/gin"
)

// SyncUsersController enqueues a background re-run of the user mirror.
type SyncUsersController struct {
	verifier  *auth.Verifier
	queue     qport.Client
	queueName string
}

func NewSyncUsersController(verifier *auth.Verifier, queue qport.Client, queueName string) *SyncUsersController {
	return &SyncUsersController{verifier: verifier, queue: queue, queueName: queueName}
}

func (h *SyncUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, h.verifier); !ok {
			return
		}
		if h.queue == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "background queue is not configured"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		id, err := h.queue.Enqueue(ctx,
			qport.Task{Type: task.SyncUsersTaskType},
			qport.EnqueueOption{Queue: h.queueName, MaxRetry: 3, UniqueTTL: time.Minute},
		)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue user sync"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued", "taskId": id})
	}
}
