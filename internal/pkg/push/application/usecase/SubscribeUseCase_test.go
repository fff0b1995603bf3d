package usecase

import (
	"context"
	"errors"
	"testing"

	"go-huddle/internal/pkg/push/persistence/repository/adapter"
)

func TestSubscribeRejectsIncompleteInput(t *testing.T) {
	uc := NewSubscribeUseCase(adapter.NewMemorySubscriptionRegistry())
	ctx := context.Background()

	cases := []SubscribeInput{
		{UserID: 1, P256dh: "k", Auth: "a"},
		{UserID: 1, Endpoint: "https://push.example/ep", Auth: "a"},
		{UserID: 1, Endpoint: "https://push.example/ep", P256dh: "k"},
	}
	for _, in := range cases {
		if err := uc.Execute(ctx, in); !errors.Is(err, ErrInvalidSubscription) {
			t.Fatalf("input %+v: expected ErrInvalidSubscription, got %v", in, err)
		}
	}
}

func TestSubscribeThenUnsubscribe(t *testing.T) {
	reg := adapter.NewMemorySubscriptionRegistry()
	sub := NewSubscribeUseCase(reg)
	unsub := NewUnsubscribeUseCase(reg)
	ctx := context.Background()

	in := SubscribeInput{
		UserID:   1,
		Endpoint: "https://push.example/ep",
		P256dh:   "k",
		Auth:     "a",
	}
	if err := sub.Execute(ctx, in); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	subs, _ := reg.ListForUser(ctx, 1)
	if len(subs) != 1 {
		t.Fatalf("expected 1 subscription, got %d", len(subs))
	}

	if err := unsub.Execute(ctx, UnsubscribeInput{UserID: 1, Endpoint: in.Endpoint}); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	subs, _ = reg.ListForUser(ctx, 1)
	if len(subs) != 0 {
		t.Fatalf("expected no subscriptions after unsubscribe, got %d", len(subs))
	}
}
