package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cacheport "fictionchat/internal/infrastructure/cache/port"
	chat "fictionchat/internal/pkg/chat/application/domain"
	userport "fictionchat/internal/repository/port"
)

// UsersDirectoryCacheKey holds the serialized mirrored-user directory.
// Invalidated on resync and on reset.
const UsersDirectoryCacheKey = "chat:users:directory"

// ListUsersUseCase returns every user the caller can start a conversation with,
// which is everyone in the mirror except the caller. The full directory is
// cached; the exclusion is applied per caller in memory.
type ListUsersUseCase struct {
	Users userport.UserRepository
	Cache cacheport.Cache // optional; nil disables caching
	TTL   time.Duration
}

func NewListUsersUseCase(users userport.UserRepository, cache cacheport.Cache, ttl time.Duration) *ListUsersUseCase {
	return &ListUsersUseCase{Users: users, Cache: cache, TTL: ttl}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, excludeUserID string) ([]chat.User, error) {
	if excludeUserID == "" {
		return nil, fmt.Errorf("userId is required")
	}

	all, err := uc.directory(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]chat.User, 0, len(all))
	for _, u := range all {
		if u.ID == excludeUserID {
			continue
		}
		available = append(available, u)
	}
	return available, nil
}

func (uc *ListUsersUseCase) directory(ctx context.Context) ([]chat.User, error) {
	if uc.Cache != nil {
		if raw, err := uc.Cache.Get(ctx, UsersDirectoryCacheKey); err == nil {
			var users []chat.User
			if err := json.Unmarshal([]byte(raw), &users); err == nil {
				return users, nil
			}
			// Corrupt entry: fall through to the repository and overwrite it.
		}
	}

	users, err := uc.Users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		if raw, err := json.Marshal(users); err == nil {
			// Cache write failures are not fatal; the source of truth answered.
			_ = uc.Cache.Set(ctx, UsersDirectoryCacheKey, string(raw), uc.TTL)
		}
	}
	return users, nil
}
