package http

import (
	"time"

	"fictionchat/internal/infrastructure/auth"
	cacheport "fictionchat/internal/infrastructure/cache/port"
	qport "fictionchat/internal/infrastructure/queue/port"
	"fictionchat/internal/infrastructure/realtime"
	"fictionchat/internal/pkg/chat/application/usecase"
	"fictionchat/internal/pkg/chat/delivery"
	"fictionchat/internal/pkg/chat/persistence/repository/adapter"
	"fictionchat/internal/pkg/chat/presentation/controller"
	userport "fictionchat/internal/repository/port"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps bundles the shared infrastructure the chat endpoints are wired with.
type Deps struct {
	Pool         *pgxpool.Pool
	Verifier     *auth.Verifier
	Registry     *realtime.Registry
	Users        userport.UserRepository
	Cache        cacheport.Cache // optional
	Queue        qport.Client    // optional
	QueueName    string
	UserCacheTTL time.Duration
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes; the
// action set is closed — unknown paths 404 instead of being looked up dynamically.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	dispatcher := delivery.NewDispatcher(deps.Registry)

	sendMsgCtl := controller.NewSendMessageController(deps.Pool, deps.Verifier, dispatcher)
	createCtl := controller.NewCreateConvoController(deps.Pool, deps.Verifier)
	getConvosCtl := controller.NewGetConversationsController(deps.Pool, deps.Verifier)
	getMsgCtl := controller.NewGetMessagesController(deps.Pool, deps.Verifier)
	listUsersCtl := controller.NewListUsersController(deps.Verifier,
		usecase.NewListUsersUseCase(deps.Users, deps.Cache, deps.UserCacheTTL))
	resetCtl := controller.NewResetChatController(deps.Verifier,
		usecase.NewResetChatUseCase(adapter.NewPgChatRepository(deps.Pool), deps.Users, deps.Cache))
	syncCtl := controller.NewSyncUsersController(deps.Verifier, deps.Queue, deps.QueueName)
	socketCtl := controller.NewChatSocketController(deps.Pool, deps.Verifier, deps.Registry, dispatcher)

	// POST /api/v1/chat/messages -> send-message
	g.POST("/chat/messages", sendMsgCtl.Handle())

	// GET  /api/v1/chat/conversations -> get-conversations
	// POST /api/v1/chat/conversations -> create-convo
	g.GET("/chat/conversations", getConvosCtl.Handle())
	g.POST("/chat/conversations", createCtl.Handle())

	// GET /api/v1/chat/conversations/:conversationId/messages -> get-messages
	g.GET("/chat/conversations/:conversationId/messages", getMsgCtl.Handle())

	// GET /api/v1/chat/users -> get-available-users-to-chat
	g.GET("/chat/users", listUsersCtl.Handle())

	// POST /api/v1/chat/users/sync -> enqueue a mirror resync
	g.POST("/chat/users/sync", syncCtl.Handle())

	// POST /api/v1/chat/reset -> destructive full reset (test/staging only)
	g.POST("/chat/reset", resetCtl.Handle())

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
}
