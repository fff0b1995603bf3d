package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-huddle/internal/infrastructure/auth"
	"go-huddle/internal/infrastructure/realtime"
	"go-huddle/internal/pkg/chat/application/usecase"
	"go-huddle/internal/pkg/chat/persistence/repository/adapter"
	"go-huddle/internal/pkg/chat/presentation/controller"
	useradapter "go-huddle/internal/repository/adapter"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router
// group. It constructs per-endpoint controllers and binds them directly to
// routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, hub *realtime.Hub, dispatcher usecase.PushDispatcher, authn *auth.Authenticator) {
	repo := adapter.NewPgChatRepository(pool)
	users := useradapter.NewPgUserRepository(pool)

	sendMsgCtl := controller.NewSendMessageController(
		usecase.NewSendMessageUseCase(repo, users, hub, dispatcher))
	getMsgCtl := controller.NewGetMessageController(
		usecase.NewGetMessageUseCase(repo))
	socketCtl := controller.NewChatSocketController(hub, authn)
	statusCtl := controller.NewPeerStatusController(users, hub)

	authed := g.Group("", auth.Middleware(authn))

	// POST /api/v1/messages -> send a message
	authed.POST("/messages", sendMsgCtl.Handle())

	// GET /api/v1/conversations/:username/messages -> fetch history with that peer
	authed.GET("/conversations/:username/messages", getMsgCtl.Handle())

	// GET /api/v1/users/:username/status -> online flag + advisory last-seen
	authed.GET("/users/:username/status", statusCtl.Handle())

	// GET /api/v1/ws -> websocket endpoint (token via query parameter)
	g.GET("/ws", socketCtl.Handle())
}
