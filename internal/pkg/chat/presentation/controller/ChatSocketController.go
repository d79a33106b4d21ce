package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fictionchat/internal/infrastructure/auth"
	"fictionchat/internal/infrastructure/realtime"
	"fictionchat/internal/pkg/chat/application/usecase"
	"fictionchat/internal/pkg/chat/delivery"
	"fictionchat/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatSocketController owns the websocket lifecycle: credential check on
// connect, session registration, inbound control frames, and deregistration on
// close.
type ChatSocketController struct {
	verifier        *auth.Verifier
	registry        *realtime.Registry
	dispatcher      *delivery.Dispatcher
	sendMessageUC   *usecase.SendMessageUseCase
	markAsReadUC    *usecase.MarkAsReadUseCase
	inflightTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, verifier *auth.Verifier, registry *realtime.Registry, dispatcher *delivery.Dispatcher) *ChatSocketController {
	repo := adapter.NewPgChatRepository(pool)
	return &ChatSocketController{
		verifier:        verifier,
		registry:        registry,
		dispatcher:      dispatcher,
		sendMessageUC:   usecase.NewSendMessageUseCase(repo),
		markAsReadUC:    usecase.NewMarkAsReadUseCase(repo),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin enforcement belongs to the host application's deployment.
		return true
	},
}

// Frame vocabulary shared with clients.
const (
	frameConnectionSuccess = "CONNECTION_SUCCESS"
	frameMarkAsRead        = "MARK_AS_READ"
	frameSendMessage       = "SEND_MESSAGE"
)

type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type markAsReadPayload struct {
	ConversationID int64 `json:"conversationId"`
}

type sendMessagePayload struct {
	ToID    string `json:"toId"`
	Content string `json:"content"`
}

type connectionSuccessFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the HTTP connection and runs it through the per-connection
// state machine: credential from the `token` query parameter, verify, register,
// process frames until close, deregister.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		token := c.Query("token")
		if token == "" {
			closeWithPolicyViolation(ws, "Token not provided")
			return
		}

		userID, err := ctl.verifier.Verify(token)
		if err != nil {
			closeWithPolicyViolation(ws, "Invalid token")
			return
		}

		conn := realtime.NewConnection(userID, ws)
		conn.Start()
		ctl.registry.Register(userID, conn)
		defer func() {
			// Same-connection guard: a superseded socket's close must not evict
			// its replacement.
			ctl.registry.Unregister(userID, conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		if payload, err := json.Marshal(connectionSuccessFrame{Type: frameConnectionSuccess, UserID: userID}); err == nil {
			_ = conn.Send(payload)
		}

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				continue
			}

			switch frame.Type {
			case frameMarkAsRead:
				ctl.handleMarkAsRead(c, userID, frame.Payload)
			case frameSendMessage:
				ctl.handleSendMessage(c, conn, userID, frame.Payload)
			default:
				// Unrecognized frame types are a forward-compatible no-op.
			}
		}
	}
}

func closeWithPolicyViolation(ws *websocket.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(realtime.ClosePolicyViolation, reason), deadline)
	_ = ws.Close()
}

func (ctl *ChatSocketController) handleMarkAsRead(c *gin.Context, userID string, raw json.RawMessage) {
	var p markAsReadPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	_, _ = ctl.markAsReadUC.Execute(ctx, usecase.MarkAsReadInput{
		UserID:         userID,
		ConversationID: p.ConversationID,
	})
}

func (ctl *ChatSocketController) handleSendMessage(c *gin.Context, conn *realtime.Connection, userID string, raw json.RawMessage) {
	var p sendMessagePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		SenderID: userID,
		ToID:     p.ToID,
		Content:  p.Content,
	})
	if err != nil {
		ctl.replyError(conn, err)
		return
	}

	ctl.dispatcher.Deliver(msg, p.ToID)

	// Echo the persisted message back as the sender's acknowledgment.
	if payload, err := json.Marshal(msg); err == nil {
		_ = conn.Send(payload)
	}
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, err error) {
	message := err.Error()
	if errors.Is(err, usecase.ErrPersistence) {
		message = "unexpected persistence error"
	}
	if payload, err := json.Marshal(errorFrame{Type: "ERROR", Error: message}); err == nil {
		_ = conn.Send(payload)
	}
}
