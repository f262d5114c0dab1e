package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaAsset records an image held by the CDN so the library survives restarts.
type MediaAsset struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileID    string    `gorm:"not null;index" json:"file_id"`
	Name      string    `json:"name"`
	URL       string    `gorm:"not null" json:"url"`
	Provider  string    `gorm:"not null" json:"provider"`
	Size      int       `json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (a *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
