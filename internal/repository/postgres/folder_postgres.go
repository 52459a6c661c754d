package postgres

import (
	"context"
	"database/sql"

	"archira/internal/model"
	"archira/internal/repository"
)

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

// Create inserts a new folder row and returns the stored record.
func (r *FolderPostgres) Create(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	const q = `
		INSERT INTO folders (id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, name, created_at
	`
	row := r.db.QueryRowContext(ctx, q, f.ID, f.Name, f.CreatedAt)
	var out model.Folder
	if err := row.Scan(&out.ID, &out.Name, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every folder in storage order.
func (r *FolderPostgres) List(ctx context.Context) ([]model.Folder, error) {
	const q = `SELECT id, name, created_at FROM folders`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Folder, 0)
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a folder by ID. It does not return an error if the row
// does not exist. Documents referencing the folder are untouched here;
// cascade behavior is the caller's responsibility.
func (r *FolderPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM folders WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// DeleteAll empties the folders collection.
func (r *FolderPostgres) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM folders`)
	return err
}
