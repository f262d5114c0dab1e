package handlers

import (
	"log"
	"net/http"

	"catalog-admin/catalog"
	"catalog-admin/dtos"
	"catalog-admin/models"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func (h *CategoryHandler) query() *gorm.DB {
	return h.DB.Preload("RegionMappings.Region").Order("order_index ASC, name ASC")
}

func (h *CategoryHandler) load(id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := h.query().Preload("SubCategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC, name ASC")
	}).First(&category, "id = ?", id).Error
	if err != nil {
		return category, err
	}
	category.Regions = catalog.Reconstruct(category.RegionMappings, func(m models.RegionCategory) *models.Region { return m.Region })
	return category, nil
}

func replaceCategoryRegions(tx *gorm.DB, categoryID uuid.UUID, regionIDs []uuid.UUID) error {
	if err := tx.Where("category_id = ?", categoryID).Delete(&models.RegionCategory{}).Error; err != nil {
		return err
	}
	if len(regionIDs) == 0 {
		return nil
	}
	rows := make([]models.RegionCategory, len(regionIDs))
	for i, id := range regionIDs {
		rows[i] = models.RegionCategory{RegionID: id, CategoryID: categoryID}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	regionIDs, ok := parseRegionsQuery(c)
	if !ok {
		return
	}

	var categories []models.Category
	if err := h.query().Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	catalog.AttachCategoryRegions(categories)

	categories = catalog.FilterCategories(categories, catalog.CategoryFilter{
		Search:    c.Query("search"),
		RegionIDs: regionIDs,
	})

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := h.load(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dtos.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	regionIDs, ok := checkRegions(c, h.DB, req.RegionIDs)
	if !ok {
		return
	}

	var category models.Category
	req.Apply(&category)
	category.ID = uuid.New()

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&category).Error; err != nil {
			return err
		}
		return replaceCategoryRegions(tx, category.ID, regionIDs)
	})
	if err != nil {
		log.Printf("Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	category, err = h.load(category.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var req dtos.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	regionIDs, ok := checkRegions(c, h.DB, req.RegionIDs)
	if !ok {
		return
	}

	req.Apply(&category)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&category).Error; err != nil {
			return err
		}
		return replaceCategoryRegions(tx, category.ID, regionIDs)
	})
	if err != nil {
		log.Printf("Failed to update category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	category, err = h.load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var subcategoryCount int64
	if err := h.DB.Model(&models.SubCategory{}).Where("category_id = ?", id).Count(&subcategoryCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check category dependencies"})
		return
	}

	if subcategoryCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "Cannot delete category with subcategories",
			"message":           "Please delete or reassign subcategories first",
			"subcategory_count": subcategoryCount,
		})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.RegionCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		log.Printf("Failed to delete category %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
