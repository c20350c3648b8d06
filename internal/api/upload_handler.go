package api

import (
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/avelichko/scribe/internal/storage"
)

// maxUploadSize caps post images at 8 MB.
const maxUploadSize = 8 << 20

// UploadHandler stores post images in object storage and hands back their
// public URLs for use as a post's image reference.
type UploadHandler struct {
	images *storage.ImageStore
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(images *storage.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload handles POST /uploads. Expects a multipart form with a "file" field
// holding an image.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
	}
	if fileHeader.Size > maxUploadSize {
		return Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds 8 MB limit")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return Error(c, http.StatusBadRequest, "INVALID_TYPE", "only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
	defer file.Close()

	key := uuid.NewString() + path.Ext(fileHeader.Filename)
	if err := h.images.Put(c.Request().Context(), key, file, fileHeader.Size, contentType); err != nil {
		return Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "storing image failed")
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": h.images.URL(key)})
}
