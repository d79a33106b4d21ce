package delivery

import (
	"encoding/json"

	"fictionchat/internal/infrastructure/realtime"
	chat "fictionchat/internal/pkg/chat/application/domain"
)

// NewMessageType is the frame type pushed to a recipient's live connection.
const NewMessageType = "NEW_MESSAGE"

// Registry is the session lookup the dispatcher depends on.
type Registry interface {
	Lookup(userID string) (realtime.Conn, bool)
}

// messageEnvelope is the wire shape of a live-delivered message: the message
// fields flattened next to a type tag and the recipient id.
type messageEnvelope struct {
	Type string `json:"type"`
	ToID string `json:"toId"`
	chat.Message
}

// Dispatcher pushes freshly persisted messages to the recipient's live
// connection. Delivery is best-effort at-most-once: if the recipient has no open
// connection the message is silently dropped from live delivery (it remains
// retrievable via history).
type Dispatcher struct {
	registry Registry
}

func NewDispatcher(registry Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Deliver reports whether the payload was handed to a live connection.
func (d *Dispatcher) Deliver(msg *chat.Message, recipientID string) bool {
	conn, ok := d.registry.Lookup(recipientID)
	if !ok || !conn.IsOpen() {
		return false
	}

	envelope := messageEnvelope{Type: NewMessageType, ToID: recipientID, Message: *msg}
	// FromMe is relative to the reader; for the recipient it is always false.
	envelope.FromMe = false

	payload, err := json.Marshal(envelope)
	if err != nil {
		return false
	}
	return conn.Send(payload) == nil
}
