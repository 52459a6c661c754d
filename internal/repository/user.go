package repository

import (
	"context"

	"archira/internal/model"
)

// UserRepository defines data access for user accounts.
// Lookups that find no row return sql.ErrNoRows; the unique email index is
// enforced by the database, but business-level rejection of duplicates is
// the caller's job (pre-check with FindByEmail).
type UserRepository interface {
	// Create inserts a new user record. The caller provides the ID.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by its ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns the user registered under the given email,
	// matched case-sensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// DeleteAll empties the collection. Used by full-reset paths only.
	DeleteAll(ctx context.Context) error
}
