package catalog

import (
	"catalog-admin/models"

	"github.com/google/uuid"
)

// Selection is the cascading category/subcategory choice of a product listing.
// Changing the category always clears the subcategory, so the pair can never
// name a subcategory outside the selected category.
type Selection struct {
	CategoryID    uuid.UUID
	SubCategoryID uuid.UUID
}

// SelectCategory switches the category. The subcategory is reset whenever
// the category actually changes.
func (s *Selection) SelectCategory(id uuid.UUID) {
	if s.CategoryID != id {
		s.SubCategoryID = uuid.Nil
	}
	s.CategoryID = id
}

// SelectSubCategory accepts id only if it is among options; otherwise the
// subcategory resets to "all". uuid.Nil always clears the selection.
func (s *Selection) SelectSubCategory(id uuid.UUID, options []models.SubCategory) bool {
	if id == uuid.Nil {
		s.SubCategoryID = uuid.Nil
		return true
	}
	for _, o := range options {
		if o.ID == id {
			s.SubCategoryID = id
			return true
		}
	}
	s.SubCategoryID = uuid.Nil
	return false
}

// Options returns the subcategories selectable under the current category.
func (s *Selection) Options(all []models.SubCategory) []models.SubCategory {
	return SubCategoryOptions(all, s.CategoryID)
}

// ProductFilter combines the selection with a search and region set.
func (s *Selection) ProductFilter(search string, regionIDs []uuid.UUID) ProductFilter {
	return ProductFilter{
		Search:        search,
		RegionIDs:     regionIDs,
		CategoryID:    s.CategoryID,
		SubCategoryID: s.SubCategoryID,
	}
}

// SubCategoryOptions returns the subcategories belonging to categoryID, or all
// of them when categoryID is uuid.Nil.
func SubCategoryOptions(all []models.SubCategory, categoryID uuid.UUID) []models.SubCategory {
	if categoryID == uuid.Nil {
		return all
	}
	out := make([]models.SubCategory, 0, len(all))
	for _, s := range all {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}
