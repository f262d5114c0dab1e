package models

import "github.com/google/uuid"

// Join rows between regions and the three catalog levels. They carry no
// identity of their own; the embedded pointer is nil when the target row
// has been removed.

type RegionCategory struct {
	RegionID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"region_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
	Region     *Region   `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (RegionCategory) TableName() string { return "region_category_mapping" }

type RegionSubCategory struct {
	RegionID      uuid.UUID    `gorm:"type:uuid;primaryKey" json:"region_id"`
	SubCategoryID uuid.UUID    `gorm:"type:uuid;primaryKey" json:"sub_category_id"`
	Region        *Region      `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	SubCategory   *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
}

func (RegionSubCategory) TableName() string { return "region_subcategory_mapping" }

type RegionProduct struct {
	RegionID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"region_id"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	Region    *Region   `gorm:"foreignKey:RegionID" json:"region,omitempty"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (RegionProduct) TableName() string { return "region_product_mapping" }
