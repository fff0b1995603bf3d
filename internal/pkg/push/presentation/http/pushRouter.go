package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-huddle/internal/infrastructure/auth"
	wpport "go-huddle/internal/infrastructure/webpush/port"
	"go-huddle/internal/pkg/push/application/usecase"
	"go-huddle/internal/pkg/push/persistence/repository/adapter"
	"go-huddle/internal/pkg/push/presentation/controller"
)

// RegisterRoutes registers push-subscription endpoints under the given router
// group. sender may be nil (degraded mode); the key endpoint then serves an
// empty string.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, sender wpport.Sender, authn *auth.Authenticator) {
	registry := adapter.NewPgSubscriptionRegistry(pool)

	keyCtl := controller.NewPublicKeyController(sender)
	subCtl := controller.NewSubscribeController(usecase.NewSubscribeUseCase(registry))
	unsubCtl := controller.NewUnsubscribeController(usecase.NewUnsubscribeUseCase(registry))

	// GET /api/v1/push/key -> public signing key for client subscription setup
	g.GET("/push/key", keyCtl.Handle())

	authed := g.Group("", auth.Middleware(authn))

	// POST /api/v1/push/subscriptions -> upsert by endpoint
	authed.POST("/push/subscriptions", subCtl.Handle())

	// DELETE /api/v1/push/subscriptions -> remove by endpoint, owner-checked
	authed.DELETE("/push/subscriptions", unsubCtl.Handle())
}
