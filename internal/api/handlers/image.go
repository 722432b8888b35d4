package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monitool/backend/internal/models"
	"github.com/monitool/backend/internal/storage"
	"gorm.io/gorm"
)

// ImageHandler exposes image upload, serving and deletion
type ImageHandler struct {
	db      *gorm.DB
	storage *storage.Service
	maxSize int64
}

func NewImageHandler(db *gorm.DB, store *storage.Service, maxSize int64) *ImageHandler {
	return &ImageHandler{db: db, storage: store, maxSize: maxSize}
}

// UploadResponse describes a stored upload
type UploadResponse struct {
	Filename    string `json:"filename"`
	FilePath    string `json:"file_path"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type"`
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// Upload godoc
// @Summary Upload an image
// @Description Accepts a multipart file plus an optional subfolder. When a
// @Description toolbox_id form field is present an Image row is recorded.
// @Tags images
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file (JPEG or PNG)"
// @Param subfolder formData string false "Upload namespace"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /images/upload [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize)

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Missing file"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "Only JPEG and PNG images are allowed"})
		return
	}

	subfolder := c.PostForm("subfolder")
	if subfolder == "" {
		subfolder = "toolboxes"
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: fmt.Sprintf("Failed to upload image: %v", err)})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: fmt.Sprintf("Failed to upload image: %v", err)})
		return
	}

	filePath, size, err := h.storage.SaveImage(data, header.Filename, subfolder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: fmt.Sprintf("Failed to upload image: %v", err)})
		return
	}

	// When the upload is tied to a toolbox, record an Image row
	if raw := c.PostForm("toolbox_id"); raw != "" {
		if err := h.recordImage(raw, c.PostForm("access_log_id"), c.PostForm("image_type"), filePath, size); err != nil {
			h.storage.DeleteImage(filePath)
			c.JSON(http.StatusNotFound, ErrorResponse{Detail: err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, UploadResponse{
		Filename:    header.Filename,
		FilePath:    filePath,
		FileSize:    size,
		ContentType: contentType,
	})
}

func (h *ImageHandler) recordImage(toolboxID, accessLogID, imageType, url string, size int64) error {
	tbID, err := uuid.Parse(toolboxID)
	if err != nil {
		return fmt.Errorf("Toolbox not found")
	}
	var toolbox models.Toolbox
	if err := h.db.Where("id = ?", tbID).First(&toolbox).Error; err != nil {
		return fmt.Errorf("Toolbox not found")
	}

	img := models.Image{
		ToolboxID: tbID,
		ImageURL:  url,
		ImageType: imageType,
		FileSize:  size,
	}
	if accessLogID != "" {
		logID, err := uuid.Parse(accessLogID)
		if err != nil {
			return fmt.Errorf("Access log not found")
		}
		var log models.AccessLog
		if err := h.db.Where("id = ?", logID).First(&log).Error; err != nil {
			return fmt.Errorf("Access log not found")
		}
		img.AccessLogID = &logID
	}

	return h.db.Create(&img).Error
}

// Serve godoc
// @Summary Serve an uploaded file
// @Tags images
// @Produce octet-stream
// @Param subfolder path string true "Upload namespace"
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /uploads/{subfolder}/{filename} [get]
func (h *ImageHandler) Serve(c *gin.Context) {
	rel := storage.URLPrefix + c.Param("subfolder") + "/" + c.Param("filename")

	path, ok := h.storage.ResolvePath(rel)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Image not found"})
		return
	}

	c.File(path)
}

// Delete godoc
// @Summary Delete an uploaded image by its file_path
// @Tags images
// @Produce json
// @Param file_path query string true "Relative path returned by upload"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /images [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	filePath := c.Query("file_path")

	if !h.storage.DeleteImage(filePath) {
		c.JSON(http.StatusNotFound, ErrorResponse{Detail: "Image not found"})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Image deleted successfully"})
}
