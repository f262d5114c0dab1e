package catalog

import (
	"strings"

	"catalog-admin/models"

	"github.com/google/uuid"
)

// ProductFilter narrows a product list. Zero values leave the matching
// predicate unconstrained.
type ProductFilter struct {
	Search        string
	RegionIDs     []uuid.UUID
	CategoryID    uuid.UUID
	SubCategoryID uuid.UUID
}

// SubCategoryFilter narrows a subcategory list.
type SubCategoryFilter struct {
	Search     string
	RegionIDs  []uuid.UUID
	CategoryID uuid.UUID
}

// CategoryFilter narrows a category list.
type CategoryFilter struct {
	Search    string
	RegionIDs []uuid.UUID
}

// FilterProducts keeps the products matching every predicate of f: text over
// name, description and reference; owning category; subcategory; and at
// least one shared region. Products must have SubCategory and Regions
// loaded for the category and region predicates to match.
func FilterProducts(products []models.Product, f ProductFilter) []models.Product {
	q := normalizeQuery(f.Search)
	regions := idSet(f.RegionIDs)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !containsAny(q, p.Name, p.Description, p.Reference) {
			continue
		}
		if f.CategoryID != uuid.Nil && p.CategoryID() != f.CategoryID {
			continue
		}
		if f.SubCategoryID != uuid.Nil && p.SubCategoryID != f.SubCategoryID {
			continue
		}
		if len(regions) > 0 && !intersects(regions, p.Regions) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterSubCategories keeps the subcategories whose name, description or parent
// category name matches the search, that belong to the selected category and
// that share a region with the selection.
func FilterSubCategories(subcategories []models.SubCategory, f SubCategoryFilter) []models.SubCategory {
	q := normalizeQuery(f.Search)
	regions := idSet(f.RegionIDs)

	out := make([]models.SubCategory, 0, len(subcategories))
	for _, s := range subcategories {
		if q != "" {
			parent := ""
			if s.Category != nil {
				parent = s.Category.Name
			}
			if !containsAny(q, s.Name, s.Description, parent) {
				continue
			}
		}
		if f.CategoryID != uuid.Nil && s.CategoryID != f.CategoryID {
			continue
		}
		if len(regions) > 0 && !intersects(regions, s.Regions) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterCategories keeps the categories whose name or description matches the
// search and that share a region with the selection.
func FilterCategories(categories []models.Category, f CategoryFilter) []models.Category {
	q := normalizeQuery(f.Search)
	regions := idSet(f.RegionIDs)

	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if q != "" && !containsAny(q, c.Name, c.Description) {
			continue
		}
		if len(regions) > 0 && !intersects(regions, c.Regions) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id != uuid.Nil {
			set[id] = struct{}{}
		}
	}
	return set
}

func intersects(set map[uuid.UUID]struct{}, regions []models.Region) bool {
	for _, r := range regions {
		if _, ok := set[r.ID]; ok {
			return true
		}
	}
	return false
}
