package delivery

import (
	"io"
	"net/http"

	"decor_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UploadHandler struct {
	useCase usecase.ImageUseCase
	log     *logrus.Logger
}

type deleteImageRequest struct {
	DeleteURL string `json:"deleteUrl" binding:"required"`
}

func NewUploadHandler(uc usecase.ImageUseCase, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *UploadHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/upload", h.Upload)
	router.DELETE("/upload", h.Delete)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.log.Warnf("Failed to parse upload form: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	headers := form.File["images"]
	productName := c.PostForm("productName")

	files := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			h.log.Errorf("Failed to open uploaded file '%s': %v", header.Filename, err)
			ErrorResponse(c, http.StatusBadRequest, "Failed to read uploaded file")
			return
		}
		defer func(f io.Closer) { _ = f.Close() }(f)
		files = append(files, usecase.UploadFile{Filename: header.Filename, Content: f})
	}

	refs, err := h.useCase.UploadImages(c.Request.Context(), productName, files)
	if err != nil {
		h.log.Errorf("Failed to upload images: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to upload images: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Images uploaded successfully", gin.H{"urls": refs})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Delete URL is required")
		return
	}

	if err := h.useCase.DeleteImage(c.Request.Context(), req.DeleteURL); err != nil {
		status := mapErrorToStatus(err)
		if status != http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		ErrorResponse(c, status, "Failed to delete image")
		return
	}
	SuccessResponse(c, http.StatusOK, "Image deleted successfully", nil)
}
