package handlers

import (
	"log"
	"net/http"

	"catalog-admin/media"

	"github.com/gin-gonic/gin"
)

// CredentialMinter produces one-hour upload credentials for the image CDN.
type CredentialMinter interface {
	Mint() (media.Credentials, error)
}

// AuthTokenHandler serves the credential minting endpoint used by browser uploads.
type AuthTokenHandler struct {
	Minter CredentialMinter
}

func (h *AuthTokenHandler) GetAuthToken(c *gin.Context) {
	if h.Minter == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ImageKit credentials not configured"})
		return
	}

	creds, err := h.Minter.Mint()
	if err != nil {
		log.Printf("Failed to mint upload credentials: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, creds)
}
