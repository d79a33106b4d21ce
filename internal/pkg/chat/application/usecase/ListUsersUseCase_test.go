package usecase

import (
	"context"
	"testing"
	"time"

	chat "fictionchat/internal/pkg/chat/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directoryUsers() []chat.User {
	return []chat.User{
		{ID: "u1", FullName: "User One"},
		{ID: "u2", FullName: "User Two"},
		{ID: "u3", FullName: "User Three"},
	}
}

func TestListUsersExcludesCaller(t *testing.T) {
	users := &fakeUserRepo{users: directoryUsers()}
	uc := NewListUsersUseCase(users, nil, time.Minute)

	got, err := uc.Execute(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, u := range got {
		assert.NotEqual(t, "u2", u.ID)
	}
}

func TestListUsersServesSecondCallFromCache(t *testing.T) {
	users := &fakeUserRepo{users: directoryUsers()}
	cache := newFakeCache()
	uc := NewListUsersUseCase(users, cache, time.Minute)

	_, err := uc.Execute(context.Background(), "u1")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), "u3")
	require.NoError(t, err)

	assert.Equal(t, 1, users.listCalls, "directory should be read once and cached")
	_, hasKey := cache.entries[UsersDirectoryCacheKey]
	assert.True(t, hasKey)
}

func TestListUsersToleratesCorruptCacheEntry(t *testing.T) {
	users := &fakeUserRepo{users: directoryUsers()}
	cache := newFakeCache()
	cache.entries[UsersDirectoryCacheKey] = "{not json"
	uc := NewListUsersUseCase(users, cache, time.Minute)

	got, err := uc.Execute(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, users.listCalls)
}
