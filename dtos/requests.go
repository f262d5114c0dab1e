package dtos

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ContactRequest is a submission of a regional site's contact form.
type ContactRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email"`
	Phone                string `json:"phone" binding:"max=50"`
	Message              string `json:"message" binding:"required,max=5000"`
	CommunicationConsent bool   `json:"communication_consent"`
	RegionCode           string `json:"region_code" binding:"required"`
}

type MediaImportRequest struct {
	URL    string `json:"url" binding:"required,url"`
	Preset string `json:"preset" binding:"omitempty,oneof=library thumbnail"`
}
