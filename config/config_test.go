package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadEnv(t *testing.T) {
	// LoadEnv returns nil when no .env file exists
	err := LoadEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvAllSet(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DATABASE_URL", "test-db-url")
	defer os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvMissingJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Setenv("DATABASE_URL", "test-db-url")
	defer os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing JWT_SECRET")
	}
}

func TestValidateEnvMissingDatabaseURL(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("JWT_SECRET")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestValidateEnvMissingBoth(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing both")
	}
}

func TestGetEnvExisting(t *testing.T) {
	os.Setenv("TEST_GET_ENV_KEY", "test-value")
	defer os.Unsetenv("TEST_GET_ENV_KEY")

	result := GetEnv("TEST_GET_ENV_KEY", "default")
	if result != "test-value" {
		t.Errorf("expected 'test-value', got '%s'", result)
	}
}

func TestGetEnvMissing(t *testing.T) {
	os.Unsetenv("TEST_GET_ENV_MISSING")
	result := GetEnv("TEST_GET_ENV_MISSING", "fallback")
	if result != "fallback" {
		t.Errorf("expected 'fallback', got '%s'", result)
	}
}

func TestLoadEnvExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("CATALOG_TEST_FROM_FILE=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("CATALOG_TEST_FROM_FILE")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if os.Getenv("CATALOG_TEST_FROM_FILE") != "loaded" {
		t.Error("expected variable from env file")
	}
}

func TestLoadEnvMissingExplicitPath(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MEDIA_PROVIDER", "MEDIA_FOLDER", "UPLOAD_TIMEOUT", "FRONTEND_URL", "ADMIN_URL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.MediaProvider != ProviderImageKit {
		t.Errorf("expected imagekit provider, got %s", cfg.MediaProvider)
	}
	if cfg.MediaFolder != "media" {
		t.Errorf("expected media folder, got %s", cfg.MediaFolder)
	}
	if cfg.UploadTimeout != 60*time.Second {
		t.Errorf("expected 60s upload timeout, got %v", cfg.UploadTimeout)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("expected no origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MEDIA_PROVIDER", " Cloudinary ")
	t.Setenv("UPLOAD_TIMEOUT", "90s")
	t.Setenv("FRONTEND_URL", "https://shop.example.com/")
	t.Setenv("ADMIN_URL", "https://admin.example.com")
	t.Setenv("CORS_ORIGINS", "https://admin.example.com, http://localhost:5173,")
	t.Setenv("IMAGEKIT_PUBLIC_KEY", "public_x")
	t.Setenv("IMAGEKIT_PRIVATE_KEY", "private_x")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.MediaProvider != ProviderCloudinary {
		t.Errorf("expected cloudinary, got %q", cfg.MediaProvider)
	}
	if cfg.UploadTimeout != 90*time.Second {
		t.Errorf("expected 90s, got %v", cfg.UploadTimeout)
	}
	want := []string{"https://shop.example.com", "https://admin.example.com", "http://localhost:5173"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("expected origins %v, got %v", want, cfg.AllowedOrigins)
	}
	if !cfg.ImageKitConfigured() {
		t.Error("expected ImageKit to be configured")
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("MEDIA_PROVIDER", "s3")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("MEDIA_PROVIDER", "")
	t.Setenv("UPLOAD_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("expected error for unparsable timeout")
	}
}

func TestImageKitConfiguredNeedsBothKeys(t *testing.T) {
	cfg := &Config{ImageKitPublicKey: "public_x"}
	if cfg.ImageKitConfigured() {
		t.Error("a public key alone should not count as configured")
	}
}
