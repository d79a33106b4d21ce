package chat

import "errors"

// Domain-level errors for chat behaviors
var (
	ErrSelfConversation = errors.New("chat: a user cannot open a conversation with themself")
	ErrEmptyContent     = errors.New("chat: message content is empty")
	ErrNotParticipant   = errors.New("chat: user is not a participant in the conversation")
)
