package models

import (
	"time"

	"catalog-admin/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string           `gorm:"not null" json:"name"`
	Slug           string           `gorm:"index" json:"slug"`
	Description    string           `gorm:"type:text" json:"description"`
	OrderIndex     int              `gorm:"default:0" json:"order_index"`
	ImageURL       string           `json:"image_url"`
	IconURL        string           `json:"icon_url"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	RegionMappings []RegionCategory `gorm:"foreignKey:CategoryID" json:"-"`
	Regions        []Region         `gorm:"-" json:"regions"`
	SubCategories  []SubCategory    `gorm:"foreignKey:CategoryID" json:"sub_categories,omitempty"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Slug = utils.Slugify(c.Name)
	return nil
}
