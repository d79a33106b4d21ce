package usecase

import (
	"context"
	"fmt"

	chat "fictionchat/internal/pkg/chat/application/domain"
	repository "fictionchat/internal/pkg/chat/persistence/repository/port"
)

// MarkAsReadInput identifies which conversation the user has read.
type MarkAsReadInput struct {
	UserID         string
	ConversationID int64
}

// MarkAsReadUseCase appends a read-receipt stamped with the current time.
// Receipts are additive; computing unread state takes the maximum timestamp.
type MarkAsReadUseCase struct {
	Repo repository.ChatRepository
}

func NewMarkAsReadUseCase(repo repository.ChatRepository) *MarkAsReadUseCase {
	return &MarkAsReadUseCase{Repo: repo}
}

func (uc *MarkAsReadUseCase) Execute(ctx context.Context, in MarkAsReadInput) (*chat.ChatActivity, error) {
	if in.UserID == "" || in.ConversationID <= 0 {
		return nil, fmt.Errorf("userId and conversationId are required")
	}
	activity, err := uc.Repo.AppendReadReceipt(ctx, in.UserID, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return activity, nil
}
