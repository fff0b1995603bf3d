package repository

import (
	"context"
	"errors"
)

// ErrUserNotFound signals that no user matches the lookup.
var ErrUserNotFound = errors.New("user: not found")

// User is the read-only projection of a user record the core needs. User
// records are owned by the external account layer; the core never writes them.
type User struct {
	ID          int64
	Username    string
	DisplayName string
	AvatarURL   *string
}

// UserRepository resolves user identities for recipient validation and
// display enrichment.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
}
