// Package catalog holds the in-memory relationship and filter model applied to
// catalog listings after they are loaded from the database.
package catalog

import (
	"catalog-admin/models"

	"github.com/google/uuid"
)

// Reconstruct maps join rows to the entity each row points at. Rows whose
// target is missing (deleted, or filtered out by a soft-delete scope) are
// dropped rather than returned as nil.
func Reconstruct[J any, T any](rows []J, target func(J) *T) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if t := target(row); t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// AttachCategoryRegions fills Regions on every category from its preloaded join rows.
func AttachCategoryRegions(categories []models.Category) {
	for i := range categories {
		categories[i].Regions = Reconstruct(categories[i].RegionMappings, func(m models.RegionCategory) *models.Region { return m.Region })
	}
}

// AttachSubCategoryRegions fills Regions on every subcategory from its preloaded join rows.
func AttachSubCategoryRegions(subcategories []models.SubCategory) {
	for i := range subcategories {
		subcategories[i].Regions = Reconstruct(subcategories[i].RegionMappings, func(m models.RegionSubCategory) *models.Region { return m.Region })
	}
}

// AttachProductRegions fills Regions on every product from its preloaded join rows.
func AttachProductRegions(products []models.Product) {
	for i := range products {
		products[i].Regions = Reconstruct(products[i].RegionMappings, func(m models.RegionProduct) *models.Region { return m.Region })
	}
}

// AttachRegionCategories fills Categories on every region from its preloaded join rows.
func AttachRegionCategories(regions []models.Region) {
	for i := range regions {
		regions[i].Categories = Reconstruct(regions[i].CategoryMappings, func(m models.RegionCategory) *models.Category { return m.Category })
	}
}

// RegionIDs lists the ids of the given regions.
func RegionIDs(regions []models.Region) []uuid.UUID {
	ids := make([]uuid.UUID, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}
	return ids
}
