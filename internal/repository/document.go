package repository

import (
	"context"

	"archira/internal/model"
)

// DocumentPatch carries a partial update. Nil fields are left untouched by
// Update; Unfile clears folder_id regardless of FolderID.
type DocumentPatch struct {
	Name     *string
	Favorite *bool
	Tag      *string
	FolderID *string
	Unfile   bool
}

// DocumentRepository defines data access for document metadata using SQL
// queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns every document in storage order. Callers filter and
	// sort the snapshot in memory.
	List(ctx context.Context) ([]model.Document, error)

	// Update merges the patch onto the existing row in a single statement
	// and returns the merged record, or sql.ErrNoRows if the id is absent.
	Update(ctx context.Context, id string, patch DocumentPatch) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// ClearFolderRefs unfiles every document referencing the folder.
	ClearFolderRefs(ctx context.Context, folderID string) error

	// DeleteAll empties the collection. Used by full-reset paths only.
	DeleteAll(ctx context.Context) error
}
