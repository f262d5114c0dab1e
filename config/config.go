package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Media providers accepted by MEDIA_PROVIDER.
const (
	ProviderImageKit   = "imagekit"
	ProviderCloudinary = "cloudinary"
	ProviderFirebase   = "firebase"
)

// LoadEnv loads a .env file into the process environment. With no path the
// default .env is tried and a missing file is ignored, since production sets
// variables directly. An explicit path must exist.
func LoadEnv(path ...string) error {
	if len(path) == 0 || path[0] == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(path[0]); err != nil {
		return fmt.Errorf("load %s: %w", path[0], err)
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("IMAGEKIT_PUBLIC_KEY") == "" || os.Getenv("IMAGEKIT_PRIVATE_KEY") == "" {
		log.Println("WARNING: IMAGEKIT_PUBLIC_KEY or IMAGEKIT_PRIVATE_KEY not set - /auth will return 500")
	}
	switch GetEnv("MEDIA_PROVIDER", ProviderImageKit) {
	case ProviderCloudinary:
		if os.Getenv("CLOUDINARY_URL") == "" {
			log.Println("WARNING: CLOUDINARY_URL not set - media uploads will fail")
		}
	case ProviderFirebase:
		if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
			log.Println("WARNING: FIREBASE_STORAGE_BUCKET not set - media uploads will fail")
		}
	}
	if os.Getenv("ADMIN_URL") == "" {
		log.Println("WARNING: ADMIN_URL not set - CORS may not work correctly")
	}
	if os.Getenv("SMTP_HOST") == "" || os.Getenv("SMTP_FROM") == "" {
		log.Println("WARNING: SMTP_HOST or SMTP_FROM not set - contact notifications will not be sent")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Config is the resolved runtime configuration of the server.
type Config struct {
	Port        string
	DatabaseURL string

	AllowedOrigins []string

	MediaProvider string
	MediaFolder   string
	UploadTimeout time.Duration

	ImageKitPublicKey  string
	ImageKitPrivateKey string
	// ImageKitAuthURL points the uploader at a remote minting endpoint
	// instead of signing locally.
	ImageKitAuthURL string

	CloudinaryURL string

	FirebaseCredentials string
	FirebaseBucket      string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("MEDIA_PROVIDER", ProviderImageKit)
	v.SetDefault("MEDIA_FOLDER", "media")
	v.SetDefault("UPLOAD_TIMEOUT", "60s")

	cfg := &Config{
		Port:                v.GetString("PORT"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		AllowedOrigins:      allowedOrigins(v),
		MediaProvider:       strings.ToLower(strings.TrimSpace(v.GetString("MEDIA_PROVIDER"))),
		MediaFolder:         v.GetString("MEDIA_FOLDER"),
		UploadTimeout:       v.GetDuration("UPLOAD_TIMEOUT"),
		ImageKitPublicKey:   v.GetString("IMAGEKIT_PUBLIC_KEY"),
		ImageKitPrivateKey:  v.GetString("IMAGEKIT_PRIVATE_KEY"),
		ImageKitAuthURL:     v.GetString("IMAGEKIT_AUTH_URL"),
		CloudinaryURL:       v.GetString("CLOUDINARY_URL"),
		FirebaseCredentials: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseBucket:      v.GetString("FIREBASE_STORAGE_BUCKET"),
	}

	switch cfg.MediaProvider {
	case ProviderImageKit, ProviderCloudinary, ProviderFirebase:
	default:
		return nil, fmt.Errorf("unknown MEDIA_PROVIDER %q", cfg.MediaProvider)
	}
	if cfg.UploadTimeout <= 0 {
		return nil, fmt.Errorf("UPLOAD_TIMEOUT must be positive, got %q", v.GetString("UPLOAD_TIMEOUT"))
	}

	return cfg, nil
}

// allowedOrigins collects FRONTEND_URL, ADMIN_URL and the comma separated
// CORS_ORIGINS, dropping blanks and duplicates.
func allowedOrigins(v *viper.Viper) []string {
	candidates := []string{v.GetString("FRONTEND_URL"), v.GetString("ADMIN_URL")}
	candidates = append(candidates, strings.Split(v.GetString("CORS_ORIGINS"), ",")...)

	var origins []string
	seen := make(map[string]bool)
	for _, o := range candidates {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

// ImageKitConfigured reports whether both ImageKit keys are present.
func (c *Config) ImageKitConfigured() bool {
	return c.ImageKitPublicKey != "" && c.ImageKitPrivateKey != ""
}
