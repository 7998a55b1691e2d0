package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"mybnb/internal/common"
	"mybnb/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandlers handles receipt and logo image uploads.
type UploadHandlers struct {
	storage services.StorageService
}

func NewUploadHandlers(storage services.StorageService) *UploadHandlers {
	return &UploadHandlers{storage: storage}
}

// Upload handles POST /api/uploads/receipts with a multipart "file" part. The object
// name is minted server-side; the original filename only contributes its
// extension.
func (h *UploadHandlers) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	objectName := fmt.Sprintf("%s%s", uuid.New(), filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storage.Upload(ctx, objectName, src, fileHeader.Size, contentType)
	if err != nil {
		return common.SendServerError(c, "Failed to store uploaded file")
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
