package usecase

import (
	"context"
	"fmt"

	repository "go-huddle/internal/pkg/push/persistence/repository/port"
)

// SubscribeInput carries a browser-issued subscription to register.
type SubscribeInput struct {
	UserID    int64
	Endpoint  string
	P256dh    string
	Auth      string
	UserAgent string
}

// SubscribeUseCase upserts a push subscription by endpoint URL.
type SubscribeUseCase struct {
	Registry repository.SubscriptionRegistry
}

func NewSubscribeUseCase(registry repository.SubscriptionRegistry) *SubscribeUseCase {
	return &SubscribeUseCase{Registry: registry}
}

func (uc *SubscribeUseCase) Execute(ctx context.Context, in SubscribeInput) error {
	if in.Endpoint == "" || in.P256dh == "" || in.Auth == "" {
		return ErrInvalidSubscription
	}
	if err := uc.Registry.Upsert(ctx, in.UserID, in.Endpoint, in.P256dh, in.Auth, in.UserAgent); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
