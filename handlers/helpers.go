package handlers

import (
	"net/http"
	"strconv"

	"catalog-admin/models"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseIDParam reads a uuid path parameter, answering 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// parseQueryID reads an optional uuid query parameter.
func parseQueryID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := utils.ParseOptionalID(c.Query(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func parseRegionsQuery(c *gin.Context) ([]uuid.UUID, bool) {
	ids, err := utils.ParseIDList(c.Query("regions"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid regions"})
		return nil, false
	}
	return ids, true
}

// pageParams parses page and limit, clamping them to sane bounds.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}

// pageSlice returns the page of items selected by page and limit.
func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// allExist reports whether every id names a live row of model.
func allExist(db *gorm.DB, model interface{}, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var count int64
	if err := db.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return false, err
	}
	return count == int64(len(ids)), nil
}

// checkRegions answers 400 unless every region id exists. It returns the
// deduplicated ids on success.
func checkRegions(c *gin.Context, db *gorm.DB, ids []uuid.UUID) ([]uuid.UUID, bool) {
	ids = uniqueIDs(ids)
	ok, err := allExist(db, &models.Region{}, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate regions"})
		return nil, false
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Region not found"})
		return nil, false
	}
	return ids, true
}
