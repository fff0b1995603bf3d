package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-huddle/internal/infrastructure/auth"
	"go-huddle/internal/infrastructure/realtime"
	wpport "go-huddle/internal/infrastructure/webpush/port"
	chatusecase "go-huddle/internal/pkg/chat/application/usecase"
	chathttp "go-huddle/internal/pkg/chat/presentation/http"
	pushhttp "go-huddle/internal/pkg/push/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(
	r *gin.Engine,
	pool *pgxpool.Pool,
	hub *realtime.Hub,
	dispatcher chatusecase.PushDispatcher,
	sender wpport.Sender,
	authn *auth.Authenticator,
) {
	v1 := r.Group("/api/v1")
	chathttp.RegisterRoutes(v1, pool, hub, dispatcher, authn)
	pushhttp.RegisterRoutes(v1, pool, sender, authn)
}
