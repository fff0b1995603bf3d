package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	push "go-huddle/internal/pkg/push/application/domain"
)

const inlineDispatchTimeout = 30 * time.Second

// InlineDispatcher runs the fanout in a background goroutine of the current
// process. The caller returns immediately; the spawned task runs to
// completion with its own context and catches its own panics, so a push
// outliving the originating request is fine.
type InlineDispatcher struct {
	UC  *NotifyUserUseCase
	Log *zap.Logger
}

func NewInlineDispatcher(uc *NotifyUserUseCase, log *zap.Logger) *InlineDispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &InlineDispatcher{UC: uc, Log: log}
}

func (d *InlineDispatcher) Dispatch(userID int64, n push.Notification) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.Log.Error("push dispatch panicked", zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), inlineDispatchTimeout)
		defer cancel()
		d.UC.Execute(ctx, userID, n)
	}()
}
