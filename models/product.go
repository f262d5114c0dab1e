package models

import (
	"time"

	"catalog-admin/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID               uuid.UUID                `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string                   `gorm:"not null;index" json:"name"`
	Slug             string                   `gorm:"index" json:"slug"`
	Description      string                   `gorm:"type:text" json:"description"`
	SubCategoryID    uuid.UUID                `gorm:"type:uuid;not null;index" json:"sub_category_id"`
	SubCategory      *SubCategory             `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	Price            decimal.NullDecimal      `gorm:"type:decimal(12,2)" json:"price"`
	IsActive         bool                     `gorm:"not null" json:"is_active"`
	Reference        string                   `gorm:"index" json:"reference"`
	Composition      string                   `json:"composition"`
	Technique        string                   `json:"technique"`
	Width            string                   `json:"width"`
	Weight           string                   `json:"weight"`
	Martindale       string                   `json:"martindale"`
	Repeats          string                   `json:"repeats"`
	EndUse           string                   `json:"end_use"`
	ImageURL         string                   `json:"image_url"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	DeletedAt        gorm.DeletedAt           `gorm:"index" json:"-"`
	RegionMappings   []RegionProduct          `gorm:"foreignKey:ProductID" json:"-"`
	Regions          []Region                 `gorm:"-" json:"regions"`
	Colors           []ProductColor           `gorm:"foreignKey:ProductID" json:"colors"`
	CareInstructions []ProductCareInstruction `gorm:"foreignKey:ProductID" json:"care_instructions"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Slug = utils.Slugify(p.Name)
	return nil
}

// CategoryID is the id of the category owning the product's subcategory,
// or uuid.Nil when the subcategory was not loaded.
func (p *Product) CategoryID() uuid.UUID {
	if p.SubCategory == nil {
		return uuid.Nil
	}
	return p.SubCategory.CategoryID
}

// ProductColor is one colorway of a product. At most one per product has IsDefault set.
type ProductColor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	ColorCode string    `json:"color_code"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsDefault bool      `gorm:"default:false" json:"is_default"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (pc *ProductColor) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return nil
}

type ProductCareInstruction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Instruction string    `gorm:"type:text;not null" json:"instruction"`
	Icon        string    `json:"icon,omitempty"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (pci *ProductCareInstruction) BeforeCreate(tx *gorm.DB) error {
	if pci.ID == uuid.Nil {
		pci.ID = uuid.New()
	}
	return nil
}
