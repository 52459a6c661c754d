package model

import "time"

// DefaultDocumentTag is assigned to uploads that carry no explicit tag.
const DefaultDocumentTag = "general"

// Document is the metadata record for a stored file. The file content itself
// lives in object storage under StoragePath; the record only references it.
// FolderID is nil for unfiled documents. Date has calendar-day granularity,
// assigned at creation and immutable thereafter.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"-"`
	Favorite    bool      `json:"favorite"`
	FolderID    *string   `json:"folder_id"`
	Tag         string    `json:"tag"`
	Date        time.Time `json:"date"`
}
