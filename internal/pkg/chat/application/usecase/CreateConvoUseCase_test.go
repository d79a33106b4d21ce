package usecase

import (
	"context"
	"testing"

	chat "fictionchat/internal/pkg/chat/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConvoReportsCreatedThenExisting(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewCreateConvoUseCase(repo)

	first, err := uc.Execute(context.Background(), CreateConvoInput{FromID: "u1", ToID: "u2"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := uc.Execute(context.Background(), CreateConvoInput{FromID: "u2", ToID: "u1"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ConversationID, second.ConversationID)
}

func TestCreateConvoRejectsSelf(t *testing.T) {
	uc := NewCreateConvoUseCase(newFakeChatRepo())

	_, err := uc.Execute(context.Background(), CreateConvoInput{FromID: "u1", ToID: "u1"})
	assert.ErrorIs(t, err, chat.ErrSelfConversation)
}
