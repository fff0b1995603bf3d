package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	push "go-huddle/internal/pkg/push/application/domain"
	port "go-huddle/internal/pkg/push/persistence/repository/port"
)

// MemorySubscriptionRegistry is an in-memory SubscriptionRegistry with the
// same endpoint-keyed semantics as the Postgres adapter. Used by tests.
type MemorySubscriptionRegistry struct {
	mu         sync.Mutex
	byEndpoint map[string]push.Subscription
	nextID     int64
}

func NewMemorySubscriptionRegistry() *MemorySubscriptionRegistry {
	return &MemorySubscriptionRegistry{
		byEndpoint: make(map[string]push.Subscription),
		nextID:     1,
	}
}

// Ensure interface compliance at compile time
var _ port.SubscriptionRegistry = (*MemorySubscriptionRegistry)(nil)

func (r *MemorySubscriptionRegistry) Upsert(_ context.Context, userID int64, endpoint, p256dh, auth, userAgent string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byEndpoint[endpoint]
	if !ok {
		sub = push.Subscription{ID: r.nextID, Endpoint: endpoint}
		r.nextID++
	}
	sub.UserID = userID
	sub.P256dh = p256dh
	sub.Auth = auth
	sub.UserAgent = userAgent
	sub.CreatedAt = time.Now()
	r.byEndpoint[endpoint] = sub
	return nil
}

func (r *MemorySubscriptionRegistry) Remove(_ context.Context, endpoint string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.byEndpoint[endpoint]; ok && sub.UserID == userID {
		delete(r.byEndpoint, endpoint)
	}
	return nil
}

func (r *MemorySubscriptionRegistry) RemoveByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for endpoint, sub := range r.byEndpoint {
		if sub.ID == id {
			delete(r.byEndpoint, endpoint)
			return nil
		}
	}
	return nil
}

func (r *MemorySubscriptionRegistry) ListForUser(_ context.Context, userID int64) ([]push.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var subs []push.Subscription
	for _, sub := range r.byEndpoint {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return subs, nil
}
