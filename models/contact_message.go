package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a submission from the public contact form of a regional site.
type ContactMessage struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	Email                string    `gorm:"not null" json:"email"`
	Phone                string    `json:"phone"`
	Message              string    `gorm:"type:text;not null" json:"message"`
	CommunicationConsent bool      `gorm:"default:false" json:"communication_consent"`
	RegionCode           string    `gorm:"index" json:"region_code"`
	IsRead               bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt            time.Time `gorm:"index" json:"created_at"`
}

func (ContactMessage) TableName() string { return "contactus_response" }

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
