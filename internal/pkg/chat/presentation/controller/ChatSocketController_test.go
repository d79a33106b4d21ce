package controller

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fictionchat/internal/infrastructure/auth"
	"fictionchat/internal/infrastructure/realtime"
	"fictionchat/internal/pkg/chat/delivery"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const socketTestSecret = "socket-test-secret"

func newSocketServer(t *testing.T) (*httptest.Server, *realtime.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := realtime.NewRegistry()
	t.Cleanup(registry.Close)

	verifier := auth.NewVerifier(socketTestSecret, "userId")
	ctl := NewChatSocketController(nil, verifier, registry, delivery.NewDispatcher(registry))

	r := gin.New()
	r.GET("/chat/ws", ctl.Handle())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, registry
}

func socketURL(srv *httptest.Server, token string) string {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	if token != "" {
		u += "?token=" + token
	}
	return u
}

func signSocketToken(t *testing.T, secret, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestSocketClosesWithPolicyViolationWhenTokenMissing(t *testing.T) {
	srv, registry := newSocketServer(t)

	ws, _, err := websocket.DefaultDialer.Dial(socketURL(srv, ""), nil)
	require.NoError(t, err)
	defer ws.Close()

	_, _, err = ws.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
	assert.Equal(t, 0, registry.Len())
}

func TestSocketClosesWithPolicyViolationWhenTokenInvalid(t *testing.T) {
	srv, registry := newSocketServer(t)
	token := signSocketToken(t, "some-other-secret", "u1")

	ws, _, err := websocket.DefaultDialer.Dial(socketURL(srv, token), nil)
	require.NoError(t, err)
	defer ws.Close()

	_, _, err = ws.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
	assert.Equal(t, 0, registry.Len())
}

func TestSocketGreetsAndIgnoresUnknownFrames(t *testing.T) {
	srv, registry := newSocketServer(t)
	token := signSocketToken(t, socketTestSecret, "u1")

	ws, _, err := websocket.DefaultDialer.Dial(socketURL(srv, token), nil)
	require.NoError(t, err)
	defer ws.Close()

	var hello struct {
		Type   string `json:"type"`
		UserID string `json:"userId"`
	}
	require.NoError(t, ws.ReadJSON(&hello))
	assert.Equal(t, frameConnectionSuccess, hello.Type)
	assert.Equal(t, "u1", hello.UserID)
	assert.Equal(t, 1, registry.Len())

	require.NoError(t, ws.WriteJSON(map[string]any{"type": "BOGUS"}))
	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":    frameMarkAsRead,
		"payload": map[string]any{"conversationId": 1},
	}))

	// Neither frame elicits a reply or a close; the read deadline expiring is
	// the expected outcome.
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = ws.ReadMessage()
	require.Error(t, err)
	var closeErr *websocket.CloseError
	assert.False(t, errors.As(err, &closeErr), "connection must stay open")
	assert.Equal(t, 1, registry.Len())
}
