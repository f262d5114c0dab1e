package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-admin/media"

	"github.com/gin-gonic/gin"
)

func setupAuthTokenRouter(minter CredentialMinter) *gin.Engine {
	r := gin.New()
	h := &AuthTokenHandler{Minter: minter}
	r.GET("/auth", h.GetAuthToken)
	return r
}

func TestGetAuthTokenReturnsCredentials(t *testing.T) {
	router := setupAuthTokenRouter(&mockMinter{Creds: media.Credentials{
		Token:     "public_abc",
		Expire:    1700003600,
		Signature: "c2lnbmF0dXJl",
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/auth", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["token"] != "public_abc" {
		t.Errorf("expected token public_abc, got %v", resp["token"])
	}
	if resp["expire"] != float64(1700003600) {
		t.Errorf("expected expire 1700003600, got %v", resp["expire"])
	}
	if resp["signature"] != "c2lnbmF0dXJl" {
		t.Errorf("unexpected signature %v", resp["signature"])
	}
}

func TestGetAuthTokenMintFailure(t *testing.T) {
	router := setupAuthTokenRouter(&mockMinter{Err: errors.New("ImageKit credentials not configured")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/auth", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["error"] != "ImageKit credentials not configured" {
		t.Errorf("unexpected error %v", resp["error"])
	}
}

func TestGetAuthTokenNoMinter(t *testing.T) {
	router := setupAuthTokenRouter(nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/auth", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", w.Code, w.Body.String())
	}
}
