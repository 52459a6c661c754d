package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"archira/internal/model"
	"archira/internal/repository"
)

// ErrFolderNameRequired rejects empty or whitespace-only folder names before
// persistence is attempted.
var ErrFolderNameRequired = errors.New("folder name is required")

// FolderService defines the use cases for folders.
type FolderService interface {
	// Create stores a folder with the trimmed name. Names are not unique.
	Create(ctx context.Context, name string) (*model.Folder, error)

	// List returns all folders.
	List(ctx context.Context) ([]model.Folder, error)

	// Delete removes a folder. Documents filed under it are unfiled
	// (folder reference cleared), not deleted.
	Delete(ctx context.Context, id string) error
}

type folderService struct {
	folders   repository.FolderRepository
	documents repository.DocumentRepository
}

// NewFolderService constructs a new FolderService.
func NewFolderService(folders repository.FolderRepository, documents repository.DocumentRepository) FolderService {
	return &folderService{folders: folders, documents: documents}
}

func (s *folderService) Create(ctx context.Context, name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrFolderNameRequired
	}
	folder := &model.Folder{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: today(),
	}
	stored, err := s.folders.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return stored, nil
}

func (s *folderService) List(ctx context.Context) ([]model.Folder, error) {
	return s.folders.List(ctx)
}

// Delete unfiles referencing documents first, then removes the folder.
// The two statements are not one transaction; a failure in between leaves
// the folder present with its documents already unfiled, and a retry
// completes the removal. Deleting an absent folder is not an error.
func (s *folderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.documents.ClearFolderRefs(ctx, id); err != nil {
		return fmt.Errorf("unfile documents: %w", err)
	}
	return s.folders.Delete(ctx, id)
}
