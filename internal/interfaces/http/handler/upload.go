package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legallink/backend/internal/application/social"
	"github.com/legallink/backend/internal/interfaces/http/dto"
)

// UploadHandler handles post attachment uploads
type UploadHandler struct {
	BaseHandler
	uploadService *social.UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *social.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload godoc
// @Summary      Upload a post attachment
// @Description  Store an image or PDF and return its public URL for embedding in a post
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Attachment file"
// @Success      201 {object} dto.Response{data=social.UploadResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file form field is required")
		return
	}

	if fileHeader.Size > h.uploadService.MaxSize() {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeUploadTooLarge,
			"Upload exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	// Size was checked against the multipart header; LimitReader guards
	// against a lying Content-Length.
	data, err := io.ReadAll(io.LimitReader(file, h.uploadService.MaxSize()+1))
	if err != nil {
		h.InternalError(c, "Failed to read upload")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.uploadService.UploadAttachment(c.Request.Context(), contentType, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
