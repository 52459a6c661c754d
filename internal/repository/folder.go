package repository

import (
	"context"

	"archira/internal/model"
)

// FolderRepository defines data access for folders.
type FolderRepository interface {
	// Create inserts a new folder record. The caller provides the ID.
	Create(ctx context.Context, f *model.Folder) (*model.Folder, error)

	// List returns every folder in storage order.
	List(ctx context.Context) ([]model.Folder, error)

	// Delete removes a folder by ID. It returns nil if the row was
	// deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// DeleteAll empties the collection. Used by full-reset paths only.
	DeleteAll(ctx context.Context) error
}
