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

type ProductHandler struct {
	DB *gorm.DB
}

func bySortOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (h *ProductHandler) query() *gorm.DB {
	return h.DB.
		Preload("SubCategory.Category").
		Preload("RegionMappings.Region").
		Preload("Colors", bySortOrder).
		Preload("CareInstructions", bySortOrder).
		Order("created_at DESC")
}

func (h *ProductHandler) load(id uuid.UUID) (models.Product, error) {
	var product models.Product
	if err := h.query().First(&product, "id = ?", id).Error; err != nil {
		return product, err
	}
	product.Regions = catalog.Reconstruct(product.RegionMappings, func(m models.RegionProduct) *models.Region { return m.Region })
	return product, nil
}

// replaceProductChildren swaps the region mappings, colors and care
// instructions of a product for the given sets.
func replaceProductChildren(tx *gorm.DB, productID uuid.UUID, regionIDs []uuid.UUID, colors []models.ProductColor, care []models.ProductCareInstruction) error {
	if err := tx.Where("product_id = ?", productID).Delete(&models.RegionProduct{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductColor{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductCareInstruction{}).Error; err != nil {
		return err
	}

	if len(regionIDs) > 0 {
		rows := make([]models.RegionProduct, len(regionIDs))
		for i, id := range regionIDs {
			rows[i] = models.RegionProduct{RegionID: id, ProductID: productID}
		}
		if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
			return err
		}
	}
	if len(colors) > 0 {
		if err := tx.Create(&colors).Error; err != nil {
			return err
		}
	}
	if len(care) > 0 {
		if err := tx.Create(&care).Error; err != nil {
			return err
		}
	}
	return nil
}

// validate checks the references of a product request, answering 400 on failure.
func (h *ProductHandler) validate(c *gin.Context, req dtos.ProductRequest) ([]uuid.UUID, bool) {
	if err := h.DB.First(&models.SubCategory{}, "id = ?", req.SubCategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subcategory not found"})
		return nil, false
	}
	return checkRegions(c, h.DB, req.RegionIDs)
}

// GetProducts lists products narrowed by search, category, subcategory and
// regions. A subcategory outside the chosen category is dropped from the
// selection, and the effective selection is echoed back.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	categoryID, ok := parseQueryID(c, "category_id")
	if !ok {
		return
	}
	subCategoryID, ok := parseQueryID(c, "subcategory_id")
	if !ok {
		return
	}
	regionIDs, ok := parseRegionsQuery(c)
	if !ok {
		return
	}

	var subcategories []models.SubCategory
	if err := h.DB.Find(&subcategories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subcategories"})
		return
	}

	var sel catalog.Selection
	sel.SelectCategory(categoryID)
	sel.SelectSubCategory(subCategoryID, sel.Options(subcategories))

	var products []models.Product
	if err := h.query().Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	catalog.AttachProductRegions(products)

	products = catalog.FilterProducts(products, sel.ProductFilter(c.Query("search"), regionIDs))

	page, limit := pageParams(c)
	c.JSON(http.StatusOK, gin.H{
		"products":       pageSlice(products, page, limit),
		"total":          len(products),
		"page":           page,
		"limit":          limit,
		"category_id":    sel.CategoryID,
		"subcategory_id": sel.SubCategoryID,
	})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.load(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dtos.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	regionIDs, ok := h.validate(c, req)
	if !ok {
		return
	}

	var product models.Product
	req.Apply(&product)
	product.ID = uuid.New()

	colors := req.ColorModels(product.ID)
	catalog.NormalizeDefaultColors(colors)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&product).Error; err != nil {
			return err
		}
		return replaceProductChildren(tx, product.ID, regionIDs, colors, req.CareInstructionModels(product.ID))
	})
	if err != nil {
		log.Printf("Failed to create product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	product, err = h.load(product.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	regionIDs, ok := h.validate(c, req)
	if !ok {
		return
	}

	req.Apply(&product)
	colors := req.ColorModels(product.ID)
	catalog.NormalizeDefaultColors(colors)

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
			return err
		}
		return replaceProductChildren(tx, product.ID, regionIDs, colors, req.CareInstructionModels(product.ID))
	})
	if err != nil {
		log.Printf("Failed to update product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	product, err = h.load(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// SetDefaultColor makes one color the product's default and clears the flag on the rest.
func (h *ProductHandler) SetDefaultColor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	colorID, ok := parseIDParam(c, "colorId")
	if !ok {
		return
	}

	var colors []models.ProductColor
	if err := bySortOrder(h.DB).Where("product_id = ?", id).Find(&colors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch colors"})
		return
	}

	index := -1
	for i, color := range colors {
		if color.ID == colorID {
			index = i
			break
		}
	}
	if err := catalog.SetDefaultColor(colors, index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Color not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		for _, color := range colors {
			if err := tx.Model(&models.ProductColor{}).Where("id = ?", color.ID).Update("is_default", color.IsDefault).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to set default color on product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update colors"})
		return
	}

	product, err := h.load(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := replaceProductChildren(tx, id, nil, nil, nil); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		log.Printf("Failed to delete product %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
