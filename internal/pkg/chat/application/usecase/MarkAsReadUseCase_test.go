package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAsReadIsAdditive(t *testing.T) {
	repo := newFakeChatRepo()
	uc := NewMarkAsReadUseCase(repo)

	first, err := uc.Execute(context.Background(), MarkAsReadInput{UserID: "u1", ConversationID: 1})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), MarkAsReadInput{UserID: "u1", ConversationID: 1})
	require.NoError(t, err)

	// Two calls yield two rows; the effective last-read is the max timestamp.
	require.Len(t, repo.receipts, 2)
	assert.True(t, !second.LastRead.Before(first.LastRead))
}

func TestMarkAsReadValidatesInput(t *testing.T) {
	uc := NewMarkAsReadUseCase(newFakeChatRepo())

	_, err := uc.Execute(context.Background(), MarkAsReadInput{UserID: "", ConversationID: 1})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), MarkAsReadInput{UserID: "u1", ConversationID: 0})
	assert.Error(t, err)
}
