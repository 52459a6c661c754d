package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"archira/internal/service"
)

// presignExpiry bounds how long a generated download URL stays valid.
const presignExpiry = 15 * time.Minute

func parseListFilter(s string) (service.ListFilter, bool) {
	switch s {
	case "", "all":
		return service.FilterAll, true
	case "favorites":
		return service.FilterFavorites, true
	case "recent":
		return service.FilterRecent, true
	default:
		return "", false
	}
}

// ListDocuments handles GET /documents with folder_id, q and filter params.
func ListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, ok := parseListFilter(c.Query("filter"))
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "filter must be all, favorites or recent")
		}

		res, err := docSvc.List(c.UserContext(), service.ListQuery{
			FolderID: c.Query("folder_id"),
			Search:   c.Query("q"),
			Filter:   filter,
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument handles POST /documents (multipart/form-data, field name:
// file, optional form value folder_id).
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		var folderID *string
		if v := c.FormValue("folder_id"); v != "" {
			if _, err := uuid.Parse(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FOLDER_ID", "invalid folder_id format")
			}
			folderID = &v
		}

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, folderID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument handles GET /documents/:id.
func GetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := docSvc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

type updateDocumentRequest struct {
	Name     *string `json:"name"`
	Favorite *bool   `json:"favorite"`
	Tag      *string `json:"tag"`
	// FolderID set to "" unfiles the document; omitted leaves it alone.
	FolderID *string `json:"folder_id"`
}

// UpdateDocument handles PATCH /documents/:id with a partial body; fields
// not present are preserved. Favorite toggling goes through here.
func UpdateDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		upd := service.DocumentUpdate{
			Name:     req.Name,
			Favorite: req.Favorite,
			Tag:      req.Tag,
		}
		if req.FolderID != nil {
			if *req.FolderID == "" {
				upd.Unfile = true
			} else {
				if _, err := uuid.Parse(*req.FolderID); err != nil {
					return writeError(c, fiber.StatusBadRequest, "INVALID_FOLDER_ID", "invalid folder_id format")
				}
				upd.FolderID = req.FolderID
			}
		}

		doc, err := docSvc.Update(c.UserContext(), id, upd)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument handles DELETE /documents/:id. Deletion is permanent and
// idempotent; an absent id still yields 204.
func DeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), id); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DownloadDocument handles GET /documents/:id/download, streaming the
// content from object storage.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, doc, err := docSvc.Download(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Name))
		return c.SendStream(rc, int(doc.Size))
	}
}

// PresignDocument handles GET /documents/:id/url, returning a time-limited
// download URL instead of the content itself.
func PresignDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := docSvc.PresignDownload(c.UserContext(), id, presignExpiry)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
