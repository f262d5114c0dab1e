package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"catalog-admin/dtos"
	"catalog-admin/media"
	"catalog-admin/models"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImageUploader is the compress, credentials, upload chain behind the media library.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, fileName string, opts media.CompressOptions) (media.UploadResult, error)
	Delete(ctx context.Context, fileID string) error
	Provider() string
}

// RemoteImageFetcher downloads an image from an external URL.
type RemoteImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.Reader, string, error)
}

type MediaHandler struct {
	DB       *gorm.DB
	Uploader ImageUploader
	Fetcher  RemoteImageFetcher
}

// uploadError maps a failed upload chain to a status and a short message.
func uploadError(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Image upload timed out"
	case errors.Is(err, media.ErrCompress):
		return http.StatusUnprocessableEntity, "Image could not be processed"
	case errors.Is(err, media.ErrAuthFailed):
		return http.StatusBadGateway, "Upload authentication failed"
	case errors.Is(err, media.ErrUploadFailed):
		return http.StatusBadGateway, "Image upload failed"
	default:
		return http.StatusInternalServerError, "Image upload failed"
	}
}

func (h *MediaHandler) configured(c *gin.Context) bool {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media storage not configured"})
		return false
	}
	return true
}

// store runs the upload chain and records the result in the library.
func (h *MediaHandler) store(c *gin.Context, r io.Reader, name, preset string) {
	opts, err := media.PresetByName(preset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Uploader.Upload(c.Request.Context(), r, name, opts)
	if err != nil {
		log.Printf("Image upload of %s failed: %v", name, err)
		status, msg := uploadError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	asset := models.MediaAsset{
		FileID:   result.FileID,
		Name:     result.Name,
		URL:      result.URL,
		Provider: h.Uploader.Provider(),
		Size:     result.Size,
		Width:    result.Width,
		Height:   result.Height,
	}
	if err := h.DB.Create(&asset).Error; err != nil {
		log.Printf("Uploaded %s (%s) but failed to record it: %v", result.URL, result.FileID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save media record"})
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *MediaHandler) GetMedia(c *gin.Context) {
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	var total int64
	if err := h.DB.Model(&models.MediaAsset{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch media"})
		return
	}

	var assets []models.MediaAsset
	if err := h.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&assets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media": assets,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UploadMedia accepts a multipart "file" and an optional "preset" (library or thumbnail).
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
		return
	}
	defer file.Close()

	h.store(c, file, fileHeader.Filename, c.PostForm("preset"))
}

// ImportMedia downloads an image from a public URL and adds it to the library.
func (h *MediaHandler) ImportMedia(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req dtos.MediaImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if h.Fetcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Media import not configured"})
		return
	}

	body, name, err := h.Fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		log.Printf("Failed to import image from %s: %v", req.URL, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not download image from URL"})
		return
	}

	h.store(c, body, name, req.Preset)
}

// DeleteMedia removes the image from the CDN first and only then drops the
// library row, so a failed CDN delete leaves the record in place.
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var asset models.MediaAsset
	if err := h.DB.First(&asset, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}

	if err := h.Uploader.Delete(c.Request.Context(), asset.FileID); err != nil {
		log.Printf("Failed to delete %s from %s: %v", asset.FileID, asset.Provider, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete image from storage"})
		return
	}

	if err := h.DB.Delete(&asset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete media record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted successfully"})
}
