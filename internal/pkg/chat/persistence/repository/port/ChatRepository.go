package repository

import (
	"context"

	chat "fictionchat/internal/pkg/chat/application/domain"
)

// ResolveResult reports which side of the resolve-or-create race won.
type ResolveResult struct {
	ConversationID int64
	Created        bool
}

// ChatRepository defines persistence operations for the chat domain.
// Multi-step operations (SendMessage, ResolveConversation, Reset) run inside a
// single database transaction; partial state is never observable.
type ChatRepository interface {
	// ResolveConversation finds or atomically creates the unique two-party
	// conversation for the unordered pair {userA, userB}.
	ResolveConversation(ctx context.Context, userA, userB string) (ResolveResult, error)

	// SendMessage resolves the conversation, inserts the message, and re-reads
	// it joined with the sender identity, all in one transaction.
	SendMessage(ctx context.Context, senderID, toID, content string) (*chat.Message, error)

	// AppendReadReceipt inserts a new read-receipt row stamped with the current
	// time. It never updates an existing row.
	AppendReadReceipt(ctx context.Context, userID string, conversationID int64) (*chat.ChatActivity, error)

	ListConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error)
	ListMessages(ctx context.Context, conversationID int64, requestingUserID string) ([]chat.Message, error)
	IsParticipant(ctx context.Context, conversationID int64, userID string) (bool, error)

	// Reset destructively clears all conversations, messages, participants,
	// receipts, and mirrored users, and restarts identifier sequences.
	Reset(ctx context.Context) error
}
