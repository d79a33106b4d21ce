package usecase

import (
	"context"
	"fmt"

	chat "fictionchat/internal/pkg/chat/application/domain"
	repository "fictionchat/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesInput carries parameters to fetch the history of a conversation.
type GetMessagesInput struct {
	ConversationID int64
	UserID         string
}

// GetMessagesUseCase returns a conversation's messages in ascending creation
// order, each annotated with whether the requesting user sent it. The caller
// must be a participant of the conversation.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.Message, error) {
	if in.ConversationID <= 0 || in.UserID == "" {
		return nil, fmt.Errorf("conversationId and userId are required")
	}

	ok, err := uc.Repo.IsParticipant(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotParticipant
	}

	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
