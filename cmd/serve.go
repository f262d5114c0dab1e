package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-admin/cloudinary"
	"catalog-admin/config"
	"catalog-admin/database"
	"catalog-admin/firebase"
	"catalog-admin/handlers"
	"catalog-admin/imagekit"
	"catalog-admin/media"
	"catalog-admin/routes"
	"catalog-admin/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const portFlag = "port"

var serveFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "Port to listen on (overrides PORT)",
	},
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API and the /auth credential endpoint",
		RunE:  serveCommand,
	}
	cobraflags.RegisterMap(cmd, serveFlags)
	return cmd
}

func serveCommand(_ *cobra.Command, _ []string) error {
	// Validate critical environment variables
	if err := config.ValidateEnv(); err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port := serveFlags[portFlag].GetString(); port != "" {
		cfg.Port = port
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create default admin user if not exists
	if err := database.CreateDefaultAdmin(db); err != nil {
		log.Printf("Warning: Could not create default admin: %v", err)
	}

	uploader, err := newUploader(context.Background(), cfg)
	if err != nil {
		log.Printf("WARNING: media storage disabled: %v", err)
	}

	deps := routes.Dependencies{
		DB:             db,
		Uploader:       uploader,
		Fetcher:        media.NewRemoteFetcher(),
		Notify:         utils.SendContactNotification,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.ImageKitConfigured() {
		deps.Minter = imagekit.NewSigner(cfg.ImageKitPublicKey, cfg.ImageKitPrivateKey)
	}

	r := gin.Default()

	// Limit multipart form memory to 10MB
	r.MaxMultipartMemory = 10 << 20

	routes.SetupRoutes(r, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		} else {
			log.Println("Database connection closed")
		}
	}

	log.Println("Server exited gracefully")
	return nil
}

// newUploader builds the upload chain for the configured media provider.
// It returns a nil interface together with the reason when the provider
// lacks its settings, so the media endpoints answer 503 instead of failing
// mid-chain.
func newUploader(ctx context.Context, cfg *config.Config) (handlers.ImageUploader, error) {
	switch cfg.MediaProvider {
	case config.ProviderCloudinary:
		store, err := cloudinary.NewStore(cfg.CloudinaryURL, cfg.MediaFolder)
		if err != nil {
			return nil, err
		}
		return media.NewUploader(store, nil, cfg.MediaFolder, cfg.UploadTimeout), nil

	case config.ProviderFirebase:
		app, err := firebase.NewApp(ctx, cfg.FirebaseCredentials)
		if err != nil {
			return nil, err
		}
		store, err := firebase.NewStore(app, cfg.FirebaseBucket, cfg.MediaFolder)
		if err != nil {
			return nil, err
		}
		return media.NewUploader(store, nil, cfg.MediaFolder, cfg.UploadTimeout), nil

	default:
		if cfg.ImageKitPrivateKey == "" {
			return nil, imagekit.ErrMissingCredentials
		}
		var source media.CredentialSource
		if cfg.ImageKitAuthURL != "" {
			source = media.NewHTTPCredentialSource(cfg.ImageKitAuthURL)
		} else {
			if !cfg.ImageKitConfigured() {
				return nil, imagekit.ErrMissingCredentials
			}
			source = imagekit.NewSigner(cfg.ImageKitPublicKey, cfg.ImageKitPrivateKey)
		}
		return media.NewUploader(imagekit.NewClient(cfg.ImageKitPrivateKey), source, cfg.MediaFolder, cfg.UploadTimeout), nil
	}
}
