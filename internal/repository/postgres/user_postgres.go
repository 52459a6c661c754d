package postgres

import (
	"context"
	"database/sql"

	"archira/internal/model"
	"archira/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
// A duplicate email surfaces as the database's unique constraint violation.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, password, name, photo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, email, password, name, photo
	`
	row := r.db.QueryRowContext(ctx, q, u.ID, u.Email, u.PasswordHash, u.Name, u.Photo)
	var out model.User
	if err := row.Scan(&out.ID, &out.Email, &out.PasswordHash, &out.Name, &out.Photo); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, email, password, name, photo
		FROM users
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Photo); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail fetches the user registered under the given email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, email, password, name, photo
		FROM users
		WHERE email = $1
	`
	row := r.db.QueryRowContext(ctx, q, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Photo); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteAll empties the users collection.
func (r *UserPostgres) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	return err
}
