package postgres

import (
	"context"
	"database/sql"

	"archira/internal/model"
	"archira/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, name, size, content_type, storage_path, favorite, folder_id, tag, date`

func scanDocument(row interface{ Scan(dest ...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Size,
		&d.ContentType,
		&d.StoragePath,
		&d.Favorite,
		&d.FolderID,
		&d.Tag,
		&d.Date,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, name, size, content_type, storage_path, favorite, folder_id, tag, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Name,
		doc.Size,
		doc.ContentType,
		doc.StoragePath,
		doc.Favorite,
		doc.FolderID,
		doc.Tag,
		doc.Date,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns every document. Order is unspecified; callers sort in memory.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update merges the patch onto the existing row. Fields not present in the
// patch keep their current value; the merge and write happen in one
// statement, so racing updates resolve to last-writer-wins per field set.
// Returns sql.ErrNoRows if the id does not exist.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch repository.DocumentPatch) (*model.Document, error) {
	const q = `
		UPDATE documents SET
			name      = COALESCE($2, name),
			favorite  = COALESCE($3, favorite),
			tag       = COALESCE($4, tag),
			folder_id = CASE WHEN $6 THEN NULL ELSE COALESCE($5, folder_id) END
		WHERE id = $1
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		patch.Name,
		patch.Favorite,
		patch.Tag,
		patch.FolderID,
		patch.Unfile,
	)
	return scanDocument(row)
}

// Delete removes a document by ID. It does not return an error if the row
// does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// ClearFolderRefs unfiles every document that references the given folder.
func (r *DocumentPostgres) ClearFolderRefs(ctx context.Context, folderID string) error {
	const q = `UPDATE documents SET folder_id = NULL WHERE folder_id = $1`
	_, err := r.db.ExecContext(ctx, q, folderID)
	return err
}

// DeleteAll empties the documents collection.
func (r *DocumentPostgres) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents`)
	return err
}
