package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-key-for-unit-tests")
}

func setupTestRouter() *gin.Engine {
	r := gin.New()

	protected := r.Group("/api")
	protected.Use(AuthMiddleware())
	protected.GET("/test", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		email, _ := c.Get("user_email")
		role, _ := c.Get("user_role")
		c.JSON(http.StatusOK, gin.H{
			"user_id": userID,
			"email":   email,
			"role":    role,
		})
	})

	admin := r.Group("/api/admin")
	admin.Use(AuthMiddleware())
	admin.Use(AdminMiddleware())
	admin.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "admin access granted"})
	})

	return r
}

func serveWithToken(router *gin.Engine, path, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := setupTestRouter()

	token, err := utils.GenerateToken(uuid.New(), "test@test.com", "admin")
	if err != nil {
		t.Fatal(err)
	}

	w := serveWithToken(router, "/api/test", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := serveWithToken(setupTestRouter(), "/api/test", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareMalformedToken(t *testing.T) {
	w := serveWithToken(setupTestRouter(), "/api/test", "Bearer not-a-valid-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	router := setupTestRouter()

	secret := os.Getenv("JWT_SECRET")
	claims := utils.Claims{
		UserID: uuid.New(),
		Email:  "expired@test.com",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    utils.AccessTokenIssuer,
		},
	}
	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := tokenObj.SignedString([]byte(secret))

	w := serveWithToken(router, "/api/test", "Bearer "+expiredToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	router := setupTestRouter()

	token, _ := utils.GenerateRefreshToken(uuid.New(), "admin@test.com", "admin")

	w := serveWithToken(router, "/api/test", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token should not grant access, got %d", w.Code)
	}
}

func TestAuthMiddlewareInvalidFormatNoBearer(t *testing.T) {
	router := setupTestRouter()

	token, _ := utils.GenerateToken(uuid.New(), "test@test.com", "admin")

	// Missing "Bearer " prefix
	w := serveWithToken(router, "/api/test", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	router := setupTestRouter()

	token, _ := utils.GenerateToken(uuid.New(), "admin@test.com", "admin")

	w := serveWithToken(router, "/api/admin/test", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminMiddlewareBlocksEditor(t *testing.T) {
	router := setupTestRouter()

	token, _ := utils.GenerateToken(uuid.New(), "editor@test.com", "editor")

	w := serveWithToken(router, "/api/admin/test", "Bearer "+token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminMiddlewareWithoutAuth(t *testing.T) {
	r := gin.New()
	r.GET("/bare", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := serveWithToken(r, "/bare", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403 without a role, got %d", w.Code)
	}
}
