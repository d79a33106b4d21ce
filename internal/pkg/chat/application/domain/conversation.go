package chat

import "time"

// Conversation is the two-party thread messages belong to. Immutable once
// created; for any two distinct users at most one conversation exists.
type Conversation struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ConversationSummary is the caller-facing shape of one conversation in a
// user's inbox listing: the conversation itself plus its participants and the
// most recent message.
type ConversationSummary struct {
	Conversation
	Participants []User       `json:"participants"`
	LastMessage  *LastMessage `json:"lastMessage"`
	OtherUser    User         `json:"otherUser"`
}

// LastMessage is the most recent message of a conversation, embedded in a
// ConversationSummary.
type LastMessage struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}
