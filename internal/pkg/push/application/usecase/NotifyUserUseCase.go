package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	wpport "go-huddle/internal/infrastructure/webpush/port"
	push "go-huddle/internal/pkg/push/application/domain"
	repository "go-huddle/internal/pkg/push/persistence/repository/port"
)

// NotifyUserUseCase fans a notification out to every subscription endpoint of
// a user. It never reports failure to its caller: per-endpoint errors are
// logged and swallowed, and endpoints the provider declares gone are pruned
// from the registry so the next fanout no longer tries them.
type NotifyUserUseCase struct {
	Registry repository.SubscriptionRegistry
	Sender   wpport.Sender // nil means no signing keypair: degraded mode
	Log      *zap.Logger

	degradedOnce sync.Once
}

func NewNotifyUserUseCase(registry repository.SubscriptionRegistry, sender wpport.Sender, log *zap.Logger) *NotifyUserUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotifyUserUseCase{Registry: registry, Sender: sender, Log: log}
}

// Execute delivers the notification to all of the user's endpoints
// concurrently and returns once every attempt has resolved. Without a
// configured sender the whole operation is a no-op, logged once per process.
func (uc *NotifyUserUseCase) Execute(ctx context.Context, userID int64, n push.Notification) {
	if uc.Sender == nil {
		uc.degradedOnce.Do(func() {
			uc.Log.Warn("push disabled: no signing keypair configured")
		})
		return
	}

	payload, err := json.Marshal(n)
	if err != nil {
		uc.Log.Error("encode notification", zap.Error(err))
		return
	}

	subs, err := uc.Registry.ListForUser(ctx, userID)
	if err != nil {
		uc.Log.Error("load subscriptions", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub push.Subscription) {
			defer wg.Done()
			uc.sendOne(ctx, sub, payload)
		}(sub)
	}
	wg.Wait()
}

func (uc *NotifyUserUseCase) sendOne(ctx context.Context, sub push.Subscription, payload []byte) {
	err := uc.Sender.Send(ctx, sub, payload)
	switch {
	case err == nil:
		return
	case errors.Is(err, wpport.ErrEndpointGone):
		// Self-healing prune: the provider says this endpoint will never
		// work again.
		if rmErr := uc.Registry.RemoveByID(ctx, sub.ID); rmErr != nil {
			uc.Log.Error("prune dead subscription",
				zap.Int64("subscription_id", sub.ID), zap.Error(rmErr))
			return
		}
		uc.Log.Info("pruned dead subscription",
			zap.Int64("subscription_id", sub.ID), zap.Int64("user_id", sub.UserID))
	default:
		// Transient: keep the subscription, no retry here. The next message
		// retries naturally.
		uc.Log.Warn("push attempt failed",
			zap.Int64("subscription_id", sub.ID), zap.Error(err))
	}
}
