package chat

import "time"

// Message is an immutable log entry in a conversation, enriched with the sender
// identity for caller-facing responses. FromMe is only meaningful in history
// listings, where it is computed relative to the requesting user.
type Message struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversationId"`
	Sender         User      `json:"sender"`
	Content        string    `db:"content" json:"content"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	FromMe         bool      `json:"isFromMe"`
}
