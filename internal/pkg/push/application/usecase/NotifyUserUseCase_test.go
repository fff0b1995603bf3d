package usecase

import (
	"context"
	"sync"
	"testing"

	wpport "go-huddle/internal/infrastructure/webpush/port"
	push "go-huddle/internal/pkg/push/application/domain"
	"go-huddle/internal/pkg/push/persistence/repository/adapter"
)

// fakeSender classifies outcomes per endpoint and counts attempts.
type fakeSender struct {
	mu       sync.Mutex
	failWith map[string]error // endpoint -> error, nil entry means success
	attempts map[string]int
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		failWith: make(map[string]error),
		attempts: make(map[string]int),
	}
}

func (s *fakeSender) Send(_ context.Context, sub push.Subscription, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[sub.Endpoint]++
	return s.failWith[sub.Endpoint]
}

func (s *fakeSender) PublicKey() string { return "test-public-key" }

func (s *fakeSender) attemptsFor(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[endpoint]
}

func TestExecuteSendsToEveryEndpoint(t *testing.T) {
	reg := adapter.NewMemorySubscriptionRegistry()
	ctx := context.Background()
	_ = reg.Upsert(ctx, 1, "https://push.example/a", "k", "a", "")
	_ = reg.Upsert(ctx, 1, "https://push.example/b", "k", "a", "")

	sender := newFakeSender()
	uc := NewNotifyUserUseCase(reg, sender, nil)

	uc.Execute(ctx, 1, push.Notification{Title: "Wendy", Body: "hi"})

	if got := sender.attemptsFor("https://push.example/a"); got != 1 {
		t.Fatalf("endpoint a: expected 1 attempt, got %d", got)
	}
	if got := sender.attemptsFor("https://push.example/b"); got != 1 {
		t.Fatalf("endpoint b: expected 1 attempt, got %d", got)
	}
}

func TestExecutePrunesGoneEndpoints(t *testing.T) {
	reg := adapter.NewMemorySubscriptionRegistry()
	ctx := context.Background()
	_ = reg.Upsert(ctx, 1, "https://push.example/dead", "k", "a", "")
	_ = reg.Upsert(ctx, 1, "https://push.example/live", "k", "a", "")

	sender := newFakeSender()
	sender.failWith["https://push.example/dead"] = wpport.ErrEndpointGone
	uc := NewNotifyUserUseCase(reg, sender, nil)

	uc.Execute(ctx, 1, push.Notification{Title: "Wendy", Body: "hi"})

	subs, err := reg.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected the dead endpoint to be pruned, got %d subscriptions", len(subs))
	}
	if subs[0].Endpoint != "https://push.example/live" {
		t.Fatalf("wrong survivor: %q", subs[0].Endpoint)
	}
}

func TestExecuteKeepsEndpointOnTransientFailure(t *testing.T) {
	reg := adapter.NewMemorySubscriptionRegistry()
	ctx := context.Background()
	_ = reg.Upsert(ctx, 1, "https://push.example/flaky", "k", "a", "")

	sender := newFakeSender()
	sender.failWith["https://push.example/flaky"] = context.DeadlineExceeded
	uc := NewNotifyUserUseCase(reg, sender, nil)

	uc.Execute(ctx, 1, push.Notification{Title: "Wendy", Body: "hi"})

	subs, _ := reg.ListForUser(ctx, 1)
	if len(subs) != 1 {
		t.Fatal("transient failure must not prune the subscription")
	}
	// No retry within the same fanout.
	if got := sender.attemptsFor("https://push.example/flaky"); got != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", got)
	}
}

func TestExecuteDegradedModeIsNoop(t *testing.T) {
	reg := adapter.NewMemorySubscriptionRegistry()
	ctx := context.Background()
	_ = reg.Upsert(ctx, 1, "https://push.example/a", "k", "a", "")

	uc := NewNotifyUserUseCase(reg, nil, nil)
	uc.Execute(ctx, 1, push.Notification{Title: "Wendy", Body: "hi"})

	// Subscriptions stay registered for when a keypair shows up.
	subs, _ := reg.ListForUser(ctx, 1)
	if len(subs) != 1 {
		t.Fatal("degraded mode must not touch subscriptions")
	}
}
