package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"archira/internal/model"
	"archira/internal/repository"
	"archira/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// ListFilter names the view filters from the document grid.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterFavorites ListFilter = "favorites"
	FilterRecent    ListFilter = "recent"
)

// ListQuery selects the visible subset of the document grid. An empty
// FolderID means no folder is selected; an empty Search matches everything.
type ListQuery struct {
	FolderID string
	Search   string
	Filter   ListFilter
}

// DocumentListResult is the service-level DTO for the filtered view.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentUpdate carries a partial update; nil fields are preserved.
// Unfile moves the document out of its folder.
type DocumentUpdate struct {
	Name     *string
	Favorite *bool
	Tag      *string
	FolderID *string
	Unfile   bool
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stores the content in object storage, saves the metadata
	// record, and rolls back the object if the record save fails, so no
	// partial document is ever visible.
	Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, folderID *string) (*model.Document, error)

	// List fetches the full document snapshot and applies the query:
	// folder selection, case-insensitive name search, named filter, and
	// a date-descending sort when the filter is FilterRecent.
	List(ctx context.Context, q ListQuery) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Update merges the partial update onto the stored record.
	// Favorite toggling rides on this: the caller supplies the new value.
	Update(ctx context.Context, id string, upd DocumentUpdate) (*model.Document, error)

	// Delete permanently removes a document and its content. Deleting an
	// absent id is not an error.
	Delete(ctx context.Context, id string) error

	// Download streams the document content from object storage.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// PresignDownload returns a time-limited URL for the content.
	PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error)
}

type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, filename, contentType string, size int64, folderID *string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	// Object keys are UUID-based; the record keeps the original filename.
	id := uuid.New().String()
	key := filepath.ToSlash(filepath.Join("documents", id+filepath.Ext(filename)))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          id,
		Name:        filename,
		Size:        objInfo.Size,
		ContentType: contentType,
		StoragePath: objInfo.Key,
		Favorite:    false,
		FolderID:    folderID,
		Tag:         model.DefaultDocumentTag,
		Date:        today(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, q ListQuery) (*DocumentListResult, error) {
	docs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := applyQuery(docs, q)
	return &DocumentListResult{Items: visible, Total: len(visible)}, nil
}

// applyQuery runs the grid pipeline over a snapshot: folder selection first,
// then the search term, then the named filter. Relative storage order is
// kept except under FilterRecent, which sorts by date descending.
func applyQuery(docs []model.Document, q ListQuery) []model.Document {
	search := strings.ToLower(q.Search)

	visible := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if q.FolderID != "" && (d.FolderID == nil || *d.FolderID != q.FolderID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(d.Name), search) {
			continue
		}
		if q.Filter == FilterFavorites && !d.Favorite {
			continue
		}
		visible = append(visible, d)
	}

	if q.Filter == FilterRecent {
		sort.SliceStable(visible, func(i, j int) bool {
			return visible[i].Date.After(visible[j].Date)
		})
	}
	return visible
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id string, upd DocumentUpdate) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.Update(ctx, id, repository.DocumentPatch{
		Name:     upd.Name,
		Favorite: upd.Favorite,
		Tag:      upd.Tag,
		FolderID: upd.FolderID,
		Unfile:   upd.Unfile,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Already gone; delete is idempotent.
			return nil
		}
		return err
	}
	// Delete from storage first; if this fails, keep the record so the
	// object key is not lost.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	if id == "" {
		return nil, nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("get storage: %w", err)
	}
	return rc, doc, nil
}

func (s *documentService) PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, expiry)
}

// today returns the current UTC calendar day. Document dates have day
// granularity and are immutable after creation.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
