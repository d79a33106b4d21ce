package usecase

import (
	"context"
	"fmt"

	chat "fictionchat/internal/pkg/chat/application/domain"
	repository "fictionchat/internal/pkg/chat/persistence/repository/port"
)

// GetConversationsUseCase lists every conversation the user participates in,
// newest conversation first, each with its participants, other user, and most
// recent message.
type GetConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewGetConversationsUseCase(repo repository.ChatRepository) *GetConversationsUseCase {
	return &GetConversationsUseCase{Repo: repo}
}

func (uc *GetConversationsUseCase) Execute(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("userId is required")
	}
	summaries, err := uc.Repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return summaries, nil
}
