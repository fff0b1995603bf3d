package repository

import (
	"context"

	push "go-huddle/internal/pkg/push/application/domain"
)

// SubscriptionRegistry is the durable mapping of users to push endpoints.
type SubscriptionRegistry interface {
	// Upsert stores the subscription, overwriting owner and keys if a row
	// with the same endpoint already exists (same browser, different
	// logged-in user).
	Upsert(ctx context.Context, userID int64, endpoint, p256dh, auth, userAgent string) error

	// Remove deletes the subscription only if it is owned by userID.
	Remove(ctx context.Context, endpoint string, userID int64) error

	// RemoveByID deletes by row identity. Used by the fanout's self-healing
	// prune path, which holds the row but not necessarily a caller identity.
	RemoveByID(ctx context.Context, id int64) error

	// ListForUser returns all subscriptions registered for the user.
	ListForUser(ctx context.Context, userID int64) ([]push.Subscription, error)
}
