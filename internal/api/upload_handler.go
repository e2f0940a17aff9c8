package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rabbitsit-backend-go/internal/storage"
)

// UploadHandler handles photo upload endpoints.
type UploadHandler struct {
	uploader storage.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// UploadRabbitPhoto handles POST /api/v1/uploads/rabbit-photo. The multipart
// "photo" field is streamed to blob storage as-is and the public URL is
// returned. No content-type or size validation beyond what the client sent.
func (h *UploadHandler) UploadRabbitPhoto(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A 'photo' file field is required", Details: err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file", Details: err.Error()})
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadRabbitPhoto(c.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		log.Printf("UploadRabbitPhoto: upload failed for %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload photo", Details: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, UploadResponse{URL: url})
}
