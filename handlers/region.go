package handlers

import (
	"log"
	"net/http"
	"strings"

	"catalog-admin/catalog"
	"catalog-admin/dtos"
	"catalog-admin/models"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegionHandler struct {
	DB *gorm.DB
}

func (h *RegionHandler) query() *gorm.DB {
	return h.DB.Preload("CategoryMappings.Category").Order("name ASC")
}

func (h *RegionHandler) load(id uuid.UUID) (models.Region, error) {
	var region models.Region
	if err := h.query().First(&region, "id = ?", id).Error; err != nil {
		return region, err
	}
	region.Categories = catalog.Reconstruct(region.CategoryMappings, func(m models.RegionCategory) *models.Category { return m.Category })
	return region, nil
}

func replaceRegionCategories(tx *gorm.DB, regionID uuid.UUID, categoryIDs []uuid.UUID) error {
	if err := tx.Where("region_id = ?", regionID).Delete(&models.RegionCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]models.RegionCategory, len(categoryIDs))
	for i, id := range categoryIDs {
		rows[i] = models.RegionCategory{RegionID: regionID, CategoryID: id}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func (h *RegionHandler) checkCategories(c *gin.Context, ids []uuid.UUID) ([]uuid.UUID, bool) {
	ids = uniqueIDs(ids)
	ok, err := allExist(h.DB, &models.Category{}, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate categories"})
		return nil, false
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return nil, false
	}
	return ids, true
}

func (h *RegionHandler) GetRegions(c *gin.Context) {
	var regions []models.Region
	if err := h.query().Find(&regions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch regions"})
		return
	}
	catalog.AttachRegionCategories(regions)

	if q := strings.ToLower(strings.TrimSpace(c.Query("search"))); q != "" {
		filtered := regions[:0]
		for _, r := range regions {
			if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Code), q) {
				filtered = append(filtered, r)
			}
		}
		regions = filtered
	}

	c.JSON(http.StatusOK, regions)
}

func (h *RegionHandler) GetRegion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	region, err := h.load(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}

	c.JSON(http.StatusOK, region)
}

func (h *RegionHandler) CreateRegion(c *gin.Context) {
	var req dtos.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if req.Name == "" || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Region name and code are required"})
		return
	}

	var existing models.Region
	if err := h.DB.Unscoped().Where("code = ?", req.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Region code already exists"})
		return
	}

	categoryIDs, ok := h.checkCategories(c, req.CategoryIDs)
	if !ok {
		return
	}

	region := models.Region{
		ID:     uuid.New(),
		Name:   req.Name,
		Code:   req.Code,
		Locale: strings.TrimSpace(req.Locale),
	}
	req.RegionDetails.Apply(&region)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&region).Error; err != nil {
			return err
		}
		return replaceRegionCategories(tx, region.ID, categoryIDs)
	})
	if err != nil {
		log.Printf("Failed to create region: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create region"})
		return
	}

	region, err = h.load(region.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload region"})
		return
	}
	c.JSON(http.StatusCreated, region)
}

// UpdateRegion edits everything but the name, code and locale.
func (h *RegionHandler) UpdateRegion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var region models.Region
	if err := h.DB.Where("id = ?", id).First(&region).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}

	var req dtos.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	categoryIDs, ok := h.checkCategories(c, req.CategoryIDs)
	if !ok {
		return
	}

	req.RegionDetails.Apply(&region)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&region).Error; err != nil {
			return err
		}
		return replaceRegionCategories(tx, region.ID, categoryIDs)
	})
	if err != nil {
		log.Printf("Failed to update region %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update region"})
		return
	}

	region, err = h.load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload region"})
		return
	}
	c.JSON(http.StatusOK, region)
}

// DeleteRegion removes the region together with every join row naming it.
func (h *RegionHandler) DeleteRegion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var region models.Region
	if err := h.DB.Where("id = ?", id).First(&region).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, join := range []interface{}{&models.RegionCategory{}, &models.RegionSubCategory{}, &models.RegionProduct{}} {
			if err := tx.Where("region_id = ?", id).Delete(join).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&region).Error
	})
	if err != nil {
		log.Printf("Failed to delete region %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete region"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Region deleted successfully"})
}
