package task

import (
	"context"
	"log"
	"time"

	cacheport "fictionchat/internal/infrastructure/cache/port"
	qport "fictionchat/internal/infrastructure/queue/port"
	"fictionchat/internal/pkg/chat/application/usecase"
	userport "fictionchat/internal/repository/port"
)

// SyncUsersTaskType is the queue task name for re-running the user mirror.
const SyncUsersTaskType = "users:sync"

// RegisterSyncUsersTask binds the mirror-resync handler to the queue server.
// The task has no payload; each run re-reads the whole host user table, so
// concurrent or repeated runs are harmless.
func RegisterSyncUsersTask(srv qport.Server, users userport.UserRepository, cache cacheport.Cache) {
	srv.Register(SyncUsersTaskType, func(ctx context.Context, t qport.Task) error {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		count, err := users.SyncFromHost(ctx)
		if err != nil {
			return err
		}
		if cache != nil {
			_, _ = cache.Del(ctx, usecase.UsersDirectoryCacheKey)
		}
		log.Printf("users:sync mirrored %d users", count)
		return nil
	})
}
