package handlers

import (
	"log"
	"net/http"

	"catalog-admin/dtos"
	"catalog-admin/models"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	DB *gorm.DB
	// Notify is called after a message is stored. Nil disables notifications.
	Notify func(utils.ContactNotification)
}

// SubmitMessage stores a public contact form submission for a known region.
func (h *MessageHandler) SubmitMessage(c *gin.Context) {
	var req dtos.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var region models.Region
	if err := h.DB.Where("code = ?", req.RegionCode).First(&region).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown region"})
		return
	}

	msg := models.ContactMessage{
		Name:                 req.Name,
		Email:                req.Email,
		Phone:                req.Phone,
		Message:              req.Message,
		CommunicationConsent: req.CommunicationConsent,
		RegionCode:           region.Code,
	}
	if err := h.DB.Create(&msg).Error; err != nil {
		log.Printf("Failed to store contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
		return
	}

	if h.Notify != nil {
		h.Notify(utils.ContactNotification{
			Name:       msg.Name,
			Email:      msg.Email,
			Phone:      msg.Phone,
			RegionCode: msg.RegionCode,
			Message:    msg.Message,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message received", "id": msg.ID})
}

func (h *MessageHandler) GetMessages(c *gin.Context) {
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	query := h.DB.Model(&models.ContactMessage{})
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}
	if region := c.Query("region_code"); region != "" {
		query = query.Where("region_code = ?", region)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var msg models.ContactMessage
	if err := h.DB.First(&msg, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if err := h.DB.Model(&msg).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	h.DB.First(&msg, "id = ?", id)
	c.JSON(http.StatusOK, msg)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := h.DB.Delete(&models.ContactMessage{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
