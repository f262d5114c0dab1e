package dtos

import (
	"catalog-admin/models"

	"github.com/google/uuid"
)

// RegionDetails holds the region fields that stay editable after creation.
type RegionDetails struct {
	ImageURL1           string      `json:"image_url_1" binding:"omitempty,url"`
	ImageURL2           string      `json:"image_url_2" binding:"omitempty,url"`
	ImageURL3           string      `json:"image_url_3" binding:"omitempty,url"`
	ImageURL4           string      `json:"image_url_4" binding:"omitempty,url"`
	Address1            string      `json:"address_1"`
	Address2            string      `json:"address_2"`
	ContactNo1          string      `json:"contact_no_1"`
	ContactNo2          string      `json:"contact_no_2"`
	Email1              string      `json:"email_1" binding:"omitempty,email"`
	Email2              string      `json:"email_2" binding:"omitempty,email"`
	WhatsappNo          string      `json:"whatsapp_no"`
	City                string      `json:"city"`
	Country             string      `json:"country"`
	MapURL              string      `json:"map_url" binding:"omitempty,url"`
	IconURL             string      `json:"icon_url" binding:"omitempty,url"`
	EnableBusinessHours bool        `json:"enable_business_hours"`
	BusinessHours       string      `json:"business_hours"`
	CategoryIDs         []uuid.UUID `json:"category_ids"`
}

func (d RegionDetails) Apply(r *models.Region) {
	r.ImageURL1 = d.ImageURL1
	r.ImageURL2 = d.ImageURL2
	r.ImageURL3 = d.ImageURL3
	r.ImageURL4 = d.ImageURL4
	r.Address1 = d.Address1
	r.Address2 = d.Address2
	r.ContactNo1 = d.ContactNo1
	r.ContactNo2 = d.ContactNo2
	r.Email1 = d.Email1
	r.Email2 = d.Email2
	r.WhatsappNo = d.WhatsappNo
	r.City = d.City
	r.Country = d.Country
	r.MapURL = d.MapURL
	r.IconURL = d.IconURL
	r.EnableBusinessHours = d.EnableBusinessHours
	r.BusinessHours = d.BusinessHours
}

// CreateRegionRequest adds the identity fields, which are only accepted on create.
type CreateRegionRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Locale string `json:"locale"`
	RegionDetails
}

// UpdateRegionRequest carries no name, code or locale; those are fixed at creation.
type UpdateRegionRequest struct {
	RegionDetails
}
