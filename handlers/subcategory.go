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

type SubCategoryHandler struct {
	DB *gorm.DB
}

func (h *SubCategoryHandler) query() *gorm.DB {
	return h.DB.Preload("Category").Preload("RegionMappings.Region").Order("order_index ASC, name ASC")
}

func (h *SubCategoryHandler) load(id uuid.UUID) (models.SubCategory, error) {
	var sub models.SubCategory
	if err := h.query().First(&sub, "id = ?", id).Error; err != nil {
		return sub, err
	}
	sub.Regions = catalog.Reconstruct(sub.RegionMappings, func(m models.RegionSubCategory) *models.Region { return m.Region })
	return sub, nil
}

func replaceSubCategoryRegions(tx *gorm.DB, subCategoryID uuid.UUID, regionIDs []uuid.UUID) error {
	if err := tx.Where("sub_category_id = ?", subCategoryID).Delete(&models.RegionSubCategory{}).Error; err != nil {
		return err
	}
	if len(regionIDs) == 0 {
		return nil
	}
	rows := make([]models.RegionSubCategory, len(regionIDs))
	for i, id := range regionIDs {
		rows[i] = models.RegionSubCategory{RegionID: id, SubCategoryID: subCategoryID}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

// checkParentCategory answers 400 unless the category exists.
func (h *SubCategoryHandler) checkParentCategory(c *gin.Context, categoryID uuid.UUID) bool {
	if err := h.DB.First(&models.Category{}, "id = ?", categoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent category not found"})
		return false
	}
	return true
}

func (h *SubCategoryHandler) GetSubCategories(c *gin.Context) {
	categoryID, ok := parseQueryID(c, "category_id")
	if !ok {
		return
	}
	regionIDs, ok := parseRegionsQuery(c)
	if !ok {
		return
	}

	var subcategories []models.SubCategory
	if err := h.query().Find(&subcategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
		return
	}
	catalog.AttachSubCategoryRegions(subcategories)

	subcategories = catalog.FilterSubCategories(subcategories, catalog.SubCategoryFilter{
		Search:     c.Query("search"),
		RegionIDs:  regionIDs,
		CategoryID: categoryID,
	})

	c.JSON(http.StatusOK, subcategories)
}

// GetSubCategoryOptions lists the subcategories selectable once a category is
// chosen; with no category every subcategory is an option.
func (h *SubCategoryHandler) GetSubCategoryOptions(c *gin.Context) {
	categoryID, ok := parseQueryID(c, "category_id")
	if !ok {
		return
	}

	var subcategories []models.SubCategory
	if err := h.DB.Order("order_index ASC, name ASC").Find(&subcategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
		return
	}

	options := catalog.SubCategoryOptions(subcategories, categoryID)
	out := make([]gin.H, len(options))
	for i, s := range options {
		out[i] = gin.H{"id": s.ID, "name": s.Name, "category_id": s.CategoryID}
	}
	c.JSON(http.StatusOK, out)
}

func (h *SubCategoryHandler) GetSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sub, err := h.load(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *SubCategoryHandler) CreateSubCategory(c *gin.Context) {
	var req dtos.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !h.checkParentCategory(c, req.CategoryID) {
		return
	}
	regionIDs, ok := checkRegions(c, h.DB, req.RegionIDs)
	if !ok {
		return
	}

	var sub models.SubCategory
	req.Apply(&sub)
	sub.ID = uuid.New()

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&sub).Error; err != nil {
			return err
		}
		return replaceSubCategoryRegions(tx, sub.ID, regionIDs)
	})
	if err != nil {
		log.Printf("Failed to create subcategory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
		return
	}

	sub, err = h.load(sub.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload subcategory"})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *SubCategoryHandler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sub models.SubCategory
	if err := h.DB.Where("id = ?", id).First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}

	var req dtos.SubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !h.checkParentCategory(c, req.CategoryID) {
		return
	}
	regionIDs, ok := checkRegions(c, h.DB, req.RegionIDs)
	if !ok {
		return
	}

	req.Apply(&sub)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&sub).Error; err != nil {
			return err
		}
		return replaceSubCategoryRegions(tx, sub.ID, regionIDs)
	})
	if err != nil {
		log.Printf("Failed to update subcategory %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subcategory"})
		return
	}

	sub, err = h.load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload subcategory"})
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubCategoryHandler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var sub models.SubCategory
	if err := h.DB.Where("id = ?", id).First(&sub).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}

	var productCount int64
	if err := h.DB.Model(&models.Product{}).Where("sub_category_id = ?", id).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subcategory dependencies"})
		return
	}

	if productCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":         "Cannot delete subcategory with associated products",
			"message":       "Please reassign or delete the associated products first",
			"product_count": productCount,
		})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_category_id = ?", id).Delete(&models.RegionSubCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sub).Error
	})
	if err != nil {
		log.Printf("Failed to delete subcategory %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subcategory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted successfully"})
}
