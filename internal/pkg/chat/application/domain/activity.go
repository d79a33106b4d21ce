package chat

import "time"

// ChatActivity is an append-only read-receipt marker. The effective "last read"
// for a user/conversation is the maximum LastRead over all rows, never an
// update-in-place.
type ChatActivity struct {
	ID             int64     `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	ConversationID int64     `db:"conversation_id" json:"conversationId"`
	LastRead       time.Time `db:"last_read" json:"lastRead"`
}
