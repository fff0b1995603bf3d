package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	port "go-huddle/internal/repository/port"
)

// PgUserRepository reads user rows owned by the external account layer.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ port.UserRepository = (*PgUserRepository)(nil)

func (r *PgUserRepository) FindByUsername(ctx context.Context, username string) (*port.User, error) {
	return r.findOne(ctx,
		"SELECT id, username, display_name, avatar_url FROM users WHERE username = $1",
		username)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id int64) (*port.User, error) {
	return r.findOne(ctx,
		"SELECT id, username, display_name, avatar_url FROM users WHERE id = $1",
		id)
}

func (r *PgUserRepository) findOne(ctx context.Context, query string, arg any) (*port.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	var u port.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	return &u, nil
}
