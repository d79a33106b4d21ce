package usecase

import (
	"context"
	"fmt"

	cacheport "fictionchat/internal/infrastructure/cache/port"
	repository "fictionchat/internal/pkg/chat/persistence/repository/port"
	userport "fictionchat/internal/repository/port"
)

// ResetChatUseCase destructively clears every conversation, message,
// participant, and receipt, restarts identifier sequences, and re-imports users
// from the host table. Intended for test and staging environments only.
type ResetChatUseCase struct {
	Repo  repository.ChatRepository
	Users userport.UserRepository
	Cache cacheport.Cache // optional
}

func NewResetChatUseCase(repo repository.ChatRepository, users userport.UserRepository, cache cacheport.Cache) *ResetChatUseCase {
	return &ResetChatUseCase{Repo: repo, Users: users, Cache: cache}
}

// Execute returns the number of users re-imported after the wipe.
func (uc *ResetChatUseCase) Execute(ctx context.Context) (int, error) {
	if err := uc.Repo.Reset(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	count, err := uc.Users.SyncFromHost(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_, _ = uc.Cache.Del(ctx, UsersDirectoryCacheKey)
	}
	return count, nil
}
