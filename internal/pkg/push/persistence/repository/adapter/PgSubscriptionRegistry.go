package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	push "go-huddle/internal/pkg/push/application/domain"
	port "go-huddle/internal/pkg/push/persistence/repository/port"
)

// PgSubscriptionRegistry persists push subscriptions in Postgres, keyed by
// endpoint URL.
type PgSubscriptionRegistry struct {
	pool *pgxpool.Pool
}

func NewPgSubscriptionRegistry(pool *pgxpool.Pool) *PgSubscriptionRegistry {
	return &PgSubscriptionRegistry{pool: pool}
}

// Ensure interface compliance at compile time
var _ port.SubscriptionRegistry = (*PgSubscriptionRegistry)(nil)

func (r *PgSubscriptionRegistry) Upsert(ctx context.Context, userID int64, endpoint, p256dh, auth, userAgent string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSubscriptionRegistry: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint)
		DO UPDATE SET user_id = EXCLUDED.user_id,
		              p256dh = EXCLUDED.p256dh,
		              auth = EXCLUDED.auth,
		              user_agent = EXCLUDED.user_agent,
		              created_at = now()
	`, userID, endpoint, p256dh, auth, userAgent)
	return err
}

func (r *PgSubscriptionRegistry) Remove(ctx context.Context, endpoint string, userID int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSubscriptionRegistry: nil pool")
	}
	_, err := r.pool.Exec(ctx,
		"DELETE FROM push_subscriptions WHERE endpoint = $1 AND user_id = $2",
		endpoint, userID,
	)
	return err
}

func (r *PgSubscriptionRegistry) RemoveByID(ctx context.Context, id int64) error {
	if r == nil || r.pool == nil {
		return errors.New("PgSubscriptionRegistry: nil pool")
	}
	_, err := r.pool.Exec(ctx, "DELETE FROM push_subscriptions WHERE id = $1", id)
	return err
}

func (r *PgSubscriptionRegistry) ListForUser(ctx context.Context, userID int64) ([]push.Subscription, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgSubscriptionRegistry: nil pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, endpoint, p256dh, auth, user_agent, created_at
		FROM push_subscriptions
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []push.Subscription
	for rows.Next() {
		var s push.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.UserAgent, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return subs, nil
}
