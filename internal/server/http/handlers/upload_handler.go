package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fixpoint/fixpoint/internal/domain/errors"
	"github.com/fixpoint/fixpoint/internal/pkg/upload"
	"github.com/fixpoint/fixpoint/internal/server/http/dto"
)

// UploadHandler stores order photos.
type UploadHandler struct {
	store *upload.Store
}

// NewUploadHandler constructs UploadHandler.
func NewUploadHandler(store *upload.Store) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload handles POST /api/upload with a multipart "file" part.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "file is required")
		return
	}

	src, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "cannot read file")
		return
	}
	defer src.Close()

	url, err := h.store.Save(fh.Filename, fh.Size, src)
	if err != nil {
		if errors.Is(err, domainErrors.ErrValidation) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "upload failed")
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}
