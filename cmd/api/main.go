package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	v1 "go-huddle/cmd/api/router/v1"
	"go-huddle/internal/infrastructure/auth"
	cacheadapter "go-huddle/internal/infrastructure/cache/adapter"
	cacheport "go-huddle/internal/infrastructure/cache/port"
	"go-huddle/internal/infrastructure/database"
	"go-huddle/internal/infrastructure/logging"
	queueadapter "go-huddle/internal/infrastructure/queue/adapter"
	"go-huddle/internal/infrastructure/realtime"
	wpadapter "go-huddle/internal/infrastructure/webpush/adapter"
	wpport "go-huddle/internal/infrastructure/webpush/port"
	chatusecase "go-huddle/internal/pkg/chat/application/usecase"
	pushtask "go-huddle/internal/pkg/push/application/task"
	pushusecase "go-huddle/internal/pkg/push/application/usecase"
	pushadapter "go-huddle/internal/pkg/push/persistence/repository/adapter"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Fine in production where env vars come from the environment.
		_ = err
	}

	log := logging.New()
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database on startup
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := database.NewPoolFromEnv(connectCtx)
	cancel()
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// Redis is optional: it backs the advisory last-seen cache and the push
	// task queue. Without it the service runs fully in-process.
	var lastSeen cacheport.Cache
	if os.Getenv("REDIS_URL") != "" {
		cache, err := cacheadapter.NewRedisAdapter()
		if err != nil {
			log.Warn("redis unavailable, last-seen cache disabled", zap.Error(err))
		} else {
			lastSeen = cache
			defer cache.Close()
		}
	}

	// Web push sender; absent keys mean degraded mode (nil sender).
	var sender wpport.Sender
	if s, err := wpadapter.NewWebPushSenderFromEnv(); err == nil {
		sender = s
	} else if !errors.Is(err, wpadapter.ErrNotConfigured) {
		log.Fatal("webpush setup failed", zap.Error(err))
	}

	registry := pushadapter.NewPgSubscriptionRegistry(pool)
	notifyUC := pushusecase.NewNotifyUserUseCase(registry, sender, log)

	// Dispatch pushes through the queue when Redis is present, inline otherwise.
	var dispatcher chatusecase.PushDispatcher
	if os.Getenv("REDIS_URL") != "" {
		client, err := queueadapter.NewAsynqClientFromEnv()
		if err != nil {
			log.Fatal("queue client setup failed", zap.Error(err))
		}
		defer client.Close()

		srv, err := queueadapter.NewAsynqServer()
		if err != nil {
			log.Fatal("queue server setup failed", zap.Error(err))
		}
		pushtask.RegisterNotifyUserTask(srv, notifyUC)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error("queue server stopped", zap.Error(err))
			}
		}()

		dispatcher = pushtask.NewQueueDispatcher(client, log)
	} else {
		dispatcher = pushusecase.NewInlineDispatcher(notifyUC, log)
	}

	hub := realtime.NewHub(realtime.NewPresenceTable(), lastSeen, log)
	defer hub.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	authn := auth.NewAuthenticator(secret, "go-huddle", 24*time.Hour)

	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, pool, hub, dispatcher, sender, authn)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
