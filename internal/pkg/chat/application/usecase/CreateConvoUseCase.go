package usecase

import (
	"context"
	"fmt"

	chat "fictionchat/internal/pkg/chat/application/domain"
	repository "fictionchat/internal/pkg/chat/persistence/repository/port"
)

// CreateConvoInput identifies the two users to connect.
type CreateConvoInput struct {
	FromID string
	ToID   string
}

// CreateConvoUseCase resolves or creates the unique conversation between two
// users. The outcome reports whether the conversation is new so callers can
// distinguish created from already-existing.
type CreateConvoUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateConvoUseCase(repo repository.ChatRepository) *CreateConvoUseCase {
	return &CreateConvoUseCase{Repo: repo}
}

func (uc *CreateConvoUseCase) Execute(ctx context.Context, in CreateConvoInput) (repository.ResolveResult, error) {
	if in.FromID == "" || in.ToID == "" {
		return repository.ResolveResult{}, fmt.Errorf("fromId and toId are required")
	}
	if in.FromID == in.ToID {
		return repository.ResolveResult{}, chat.ErrSelfConversation
	}

	res, err := uc.Repo.ResolveConversation(ctx, in.FromID, in.ToID)
	if err != nil {
		return repository.ResolveResult{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return res, nil
}
