package handlers

import (
	"net/http"

	"consultbr_backend/internal/services"
	"consultbr_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// multipartOverhead - запас на заголовки multipart поверх лимита файла
const multipartOverhead = 1 << 20

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
	maxSize       int64
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
		maxSize:       maxSize,
	}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup, g *Guards) {
	r.POST("/uploads", g.Auth, h.UploadFile)
}

// UploadFile - один файл в поле "file"; ответ используется как imageUrl, attachments или pitchDeckUrl
func (h *UploadHandler) UploadFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if h.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if apperrors.As(err, &maxErr) {
			h.HandleServiceError(c, apperrors.ErrFileTooLarge)
			return
		}
		h.HandleServiceError(c, apperrors.NewBadRequestError("Missing file field: "+err.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resp, err := h.uploadService.Upload(c.Request.Context(), userID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
