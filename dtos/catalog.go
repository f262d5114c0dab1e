package dtos

import (
	"catalog-admin/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name        string      `json:"name" binding:"required,max=255"`
	Description string      `json:"description"`
	OrderIndex  int         `json:"order_index" binding:"gte=0"`
	ImageURL    string      `json:"image_url" binding:"omitempty,url"`
	IconURL     string      `json:"icon_url" binding:"omitempty,url"`
	RegionIDs   []uuid.UUID `json:"region_ids"`
}

func (r CategoryRequest) Apply(c *models.Category) {
	c.Name = r.Name
	c.Description = r.Description
	c.OrderIndex = r.OrderIndex
	c.ImageURL = r.ImageURL
	c.IconURL = r.IconURL
}

// SubCategoryRequest is the body of subcategory create and update.
type SubCategoryRequest struct {
	Name        string      `json:"name" binding:"required,max=255"`
	Description string      `json:"description"`
	OrderIndex  int         `json:"order_index" binding:"gte=0"`
	ImageURL    string      `json:"image_url" binding:"omitempty,url"`
	IconURL     string      `json:"icon_url" binding:"omitempty,url"`
	CategoryID  uuid.UUID   `json:"category_id" binding:"required"`
	RegionIDs   []uuid.UUID `json:"region_ids"`
}

func (r SubCategoryRequest) Apply(s *models.SubCategory) {
	s.Name = r.Name
	s.Description = r.Description
	s.OrderIndex = r.OrderIndex
	s.ImageURL = r.ImageURL
	s.IconURL = r.IconURL
	s.CategoryID = r.CategoryID
}

type ColorRequest struct {
	Name      string `json:"name" binding:"required"`
	ColorCode string `json:"color_code" binding:"omitempty,hexcolor"`
	ImageURL  string `json:"image_url" binding:"omitempty,url"`
	IsDefault bool   `json:"is_default"`
}

type CareInstructionRequest struct {
	Instruction string `json:"instruction" binding:"required"`
	Icon        string `json:"icon"`
}

// ProductRequest is the body of product create and update. Colors and care
// instructions are taken in display order and replace the stored lists.
type ProductRequest struct {
	Name             string                   `json:"name" binding:"required,max=255"`
	Description      string                   `json:"description"`
	SubCategoryID    uuid.UUID                `json:"sub_category_id" binding:"required"`
	Price            *decimal.Decimal         `json:"price"`
	IsActive         *bool                    `json:"is_active"`
	Reference        string                   `json:"reference"`
	Composition      string                   `json:"composition"`
	Technique        string                   `json:"technique"`
	Width            string                   `json:"width"`
	Weight           string                   `json:"weight"`
	Martindale       string                   `json:"martindale"`
	Repeats          string                   `json:"repeats"`
	EndUse           string                   `json:"end_use"`
	ImageURL         string                   `json:"image_url" binding:"omitempty,url"`
	RegionIDs        []uuid.UUID              `json:"region_ids"`
	Colors           []ColorRequest           `json:"colors" binding:"dive"`
	CareInstructions []CareInstructionRequest `json:"care_instructions" binding:"dive"`
}

// Apply copies the scalar fields onto p. A missing is_active defaults to true.
func (r ProductRequest) Apply(p *models.Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.SubCategoryID = r.SubCategoryID
	p.Price = decimal.NullDecimal{}
	if r.Price != nil {
		p.Price = decimal.NewNullDecimal(*r.Price)
	}
	p.IsActive = true
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.Reference = r.Reference
	p.Composition = r.Composition
	p.Technique = r.Technique
	p.Width = r.Width
	p.Weight = r.Weight
	p.Martindale = r.Martindale
	p.Repeats = r.Repeats
	p.EndUse = r.EndUse
	p.ImageURL = r.ImageURL
}

// ColorModels builds the color rows for productID with sort order taken from position.
func (r ProductRequest) ColorModels(productID uuid.UUID) []models.ProductColor {
	colors := make([]models.ProductColor, len(r.Colors))
	for i, c := range r.Colors {
		colors[i] = models.ProductColor{
			ProductID: productID,
			Name:      c.Name,
			ColorCode: c.ColorCode,
			ImageURL:  c.ImageURL,
			IsDefault: c.IsDefault,
			SortOrder: i,
		}
	}
	return colors
}

func (r ProductRequest) CareInstructionModels(productID uuid.UUID) []models.ProductCareInstruction {
	care := make([]models.ProductCareInstruction, len(r.CareInstructions))
	for i, c := range r.CareInstructions {
		care[i] = models.ProductCareInstruction{
			ProductID:   productID,
			Instruction: c.Instruction,
			Icon:        c.Icon,
			SortOrder:   i,
		}
	}
	return care
}
