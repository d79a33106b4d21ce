package usecase

import (
	"context"
	"errors"
	"testing"

	chat "fictionchat/internal/pkg/chat/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageRejectsSelfConversation(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID: "u1", ToID: "u1", Content: "hi",
	})

	assert.ErrorIs(t, err, chat.ErrSelfConversation)
	assert.Zero(t, repo.sendCalls, "validation must happen before persistence")
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewSendMessageUseCase(repo)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := uc.Execute(context.Background(), SendMessageInput{
			SenderID: "u1", ToID: "u2", Content: content,
		})
		assert.ErrorIs(t, err, chat.ErrEmptyContent)
	}
	assert.Zero(t, repo.sendCalls)
}

func TestSendMessageWrapsPersistenceFailure(t *testing.T) {
	repo := newFakeChatRepo()
	repo.failWith = errors.New("connection refused")
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID: "u1", ToID: "u2", Content: "hi",
	})

	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSendMessageCreatesThenReusesConversation(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewSendMessageUseCase(repo)

	first, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID: "u1", ToID: "u2", Content: "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", first.Content)
	assert.Equal(t, "u1", first.Sender.ID)

	second, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID: "u1", ToID: "u2", Content: "again",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID, "second send must reuse the conversation")
	assert.Len(t, repo.messages, 2)
}

func TestSendMessageConversationIsOrderIndependent(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewSendMessageUseCase(repo)

	ab, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID: "u1", ToID: "u2", Content: "from u1",
	})
	require.NoError(t, err)

	ba, err := uc.Execute(context.Background(), SendMessageInput{
		SenderID: "u2", ToID: "u1", Content: "from u2",
	})
	require.NoError(t, err)

	assert.Equal(t, ab.ConversationID, ba.ConversationID)
}
