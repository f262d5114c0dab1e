package models

import (
	"time"

	"catalog-admin/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubCategory belongs to exactly one Category and may be offered in several regions.
type SubCategory struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string              `gorm:"not null;index" json:"name"`
	Slug           string              `gorm:"index" json:"slug"`
	Description    string              `gorm:"type:text" json:"description"`
	OrderIndex     int                 `gorm:"default:0" json:"order_index"`
	ImageURL       string              `json:"image_url"`
	IconURL        string              `json:"icon_url"`
	CategoryID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"category_id"`
	Category       *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`
	RegionMappings []RegionSubCategory `gorm:"foreignKey:SubCategoryID" json:"-"`
	Regions        []Region            `gorm:"-" json:"regions"`
}

func (s *SubCategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *SubCategory) BeforeSave(tx *gorm.DB) error {
	s.Slug = utils.Slugify(s.Name)
	return nil
}
