package handlers

import (
	"log"
	"net/http"

	"catalog-admin/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

// GetDashboard returns entity counts for the admin landing page. The counts
// are independent queries and run concurrently.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var categories, subcategories, products, activeProducts, regions, unread int64

	g, ctx := errgroup.WithContext(c.Request.Context())
	count := func(model interface{}, dst *int64, where ...interface{}) {
		g.Go(func() error {
			q := h.DB.WithContext(ctx).Model(model)
			if len(where) > 0 {
				q = q.Where(where[0], where[1:]...)
			}
			return q.Count(dst).Error
		})
	}

	count(&models.Category{}, &categories)
	count(&models.SubCategory{}, &subcategories)
	count(&models.Product{}, &products)
	count(&models.Product{}, &activeProducts, "is_active = ?", true)
	count(&models.Region{}, &regions)
	count(&models.ContactMessage{}, &unread, "is_read = ?", false)

	if err := g.Wait(); err != nil {
		log.Printf("Failed to build dashboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":      categories,
		"subcategories":   subcategories,
		"products":        products,
		"active_products": activeProducts,
		"regions":         regions,
		"unread_messages": unread,
	})
}
