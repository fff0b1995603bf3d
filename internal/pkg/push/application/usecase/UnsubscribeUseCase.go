package usecase

import (
	"context"
	"fmt"

	repository "go-huddle/internal/pkg/push/persistence/repository/port"
)

// UnsubscribeInput identifies the subscription to drop. The user id guards
// against removing an endpoint another user has since claimed.
type UnsubscribeInput struct {
	UserID   int64
	Endpoint string
}

// UnsubscribeUseCase removes a push subscription on explicit client request.
type UnsubscribeUseCase struct {
	Registry repository.SubscriptionRegistry
}

func NewUnsubscribeUseCase(registry repository.SubscriptionRegistry) *UnsubscribeUseCase {
	return &UnsubscribeUseCase{Registry: registry}
}

func (uc *UnsubscribeUseCase) Execute(ctx context.Context, in UnsubscribeInput) error {
	if in.Endpoint == "" {
		return ErrInvalidSubscription
	}
	if err := uc.Registry.Remove(ctx, in.Endpoint, in.UserID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
