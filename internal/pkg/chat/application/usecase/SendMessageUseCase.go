package usecase

import (
	"context"
	"fmt"
	"strings"

	chat "fictionchat/internal/pkg/chat/application/domain"
	repository "fictionchat/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	SenderID string
	ToID     string
	Content  string
}

// SendMessageUseCase persists a message into the sender/recipient conversation,
// creating the conversation when it does not exist yet. Validation happens
// before any transaction opens; the repository guarantees the resolve + insert +
// re-read sequence is atomic.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

// Execute validates the input and returns the persisted message enriched with
// the sender identity.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.SenderID == "" || in.ToID == "" {
		return nil, fmt.Errorf("senderId and toId are required")
	}
	if in.SenderID == in.ToID {
		return nil, chat.ErrSelfConversation
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, chat.ErrEmptyContent
	}

	msg, err := uc.Repo.SendMessage(ctx, in.SenderID, in.ToID, in.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msg, nil
}
