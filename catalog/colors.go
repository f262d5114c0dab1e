package catalog

import (
	"fmt"

	"catalog-admin/models"
)

// SetDefaultColor marks colors[index] as the product's default and clears the
// flag on every other color.
func SetDefaultColor(colors []models.ProductColor, index int) error {
	if index < 0 || index >= len(colors) {
		return fmt.Errorf("color index %d out of range (%d colors)", index, len(colors))
	}
	for i := range colors {
		colors[i].IsDefault = i == index
	}
	return nil
}

// NormalizeDefaultColors keeps only the first color flagged as default.
// It reports whether any flag had to be cleared.
func NormalizeDefaultColors(colors []models.ProductColor) bool {
	seen := false
	changed := false
	for i := range colors {
		if !colors[i].IsDefault {
			continue
		}
		if seen {
			colors[i].IsDefault = false
			changed = true
		}
		seen = true
	}
	return changed
}

// DefaultColor returns the default color, if any.
func DefaultColor(colors []models.ProductColor) (models.ProductColor, bool) {
	for _, c := range colors {
		if c.IsDefault {
			return c, true
		}
	}
	return models.ProductColor{}, false
}
