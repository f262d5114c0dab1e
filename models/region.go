package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Region is a market the catalog is published to. Name, Code and Locale are
// fixed once the region exists.
type Region struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                string           `gorm:"not null" json:"name"`
	Locale              string           `json:"locale"`
	Code                string           `gorm:"uniqueIndex;not null" json:"code"`
	ImageURL1           string           `gorm:"column:image_url_1" json:"image_url_1"`
	ImageURL2           string           `gorm:"column:image_url_2" json:"image_url_2"`
	ImageURL3           string           `gorm:"column:image_url_3" json:"image_url_3"`
	ImageURL4           string           `gorm:"column:image_url_4" json:"image_url_4"`
	Address1            string           `gorm:"column:address_1" json:"address_1"`
	Address2            string           `gorm:"column:address_2" json:"address_2"`
	ContactNo1          string           `gorm:"column:contact_no_1" json:"contact_no_1"`
	ContactNo2          string           `gorm:"column:contact_no_2" json:"contact_no_2"`
	Email1              string           `gorm:"column:email_1" json:"email_1"`
	Email2              string           `gorm:"column:email_2" json:"email_2"`
	WhatsappNo          string           `json:"whatsapp_no"`
	City                string           `json:"city"`
	Country             string           `json:"country"`
	MapURL              string           `json:"map_url"`
	IconURL             string           `json:"icon_url"`
	EnableBusinessHours bool             `gorm:"default:false" json:"enable_business_hours"`
	BusinessHours       string           `gorm:"type:text" json:"business_hours"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"index" json:"-"`
	CategoryMappings    []RegionCategory `gorm:"foreignKey:RegionID" json:"-"`
	Categories          []Category       `gorm:"-" json:"categories,omitempty"`
}

func (r *Region) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ImageURLs returns the non-empty display images in slot order.
func (r *Region) ImageURLs() []string {
	var urls []string
	for _, u := range []string{r.ImageURL1, r.ImageURL2, r.ImageURL3, r.ImageURL4} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
