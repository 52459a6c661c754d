package service

import (
	"context"
	"fmt"

	"archira/internal/repository"
)

// ResetStores empties all three collections. Full-reset scenarios only
// (test fixtures, local wipes); it is not reachable from any HTTP route.
func ResetStores(ctx context.Context, users repository.UserRepository, documents repository.DocumentRepository, folders repository.FolderRepository) error {
	if err := documents.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	if err := folders.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear folders: %w", err)
	}
	if err := users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}
