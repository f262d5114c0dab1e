package database

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"catalog-admin/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the PostgreSQL database behind dsn, creating it first when
// the server is reachable but the database does not exist yet.
func Connect(dsn string) (*gorm.DB, error) {
	if err := EnsureDatabase(dsn); err != nil {
		log.Printf("WARNING: could not ensure database exists: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// maintenanceDSN rewrites a postgres:// URL to point at the postgres
// maintenance database and returns the name of the database it targeted.
// Keyword/value DSNs are left alone.
func maintenanceDSN(dsn string) (string, string, bool) {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return "", "", false
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", "", false
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" || dbName == "postgres" {
		return "", "", false
	}

	parsed.Path = "/postgres"
	return parsed.String(), dbName, true
}

// EnsureDatabase creates the database named in dsn if it is missing.
func EnsureDatabase(dsn string) error {
	masterDSN, dbName, ok := maintenanceDSN(dsn)
	if !ok {
		return nil
	}

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	if _, err := sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("create database %s: %w", dbName, err)
	}
	log.Printf("Database %s created", dbName)
	return nil
}

// Models lists every table the service owns, parents before children.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.RefreshToken{},
		&models.Region{},
		&models.Category{},
		&models.SubCategory{},
		&models.Product{},
		&models.ProductColor{},
		&models.ProductCareInstruction{},
		&models.RegionCategory{},
		&models.RegionSubCategory{},
		&models.RegionProduct{},
		&models.ContactMessage{},
		&models.MediaAsset{},
	}
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}

	return nil
}

// CreateDefaultAdmin makes sure an admin account exists. Without
// ADMIN_PASSWORD a random password is generated and logged once.
func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@catalog.local"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}

	generated := adminPassword == ""
	if generated {
		adminPassword = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		Name:     "Admin User",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if generated {
		log.Printf("Default admin created: %s (generated password: %s)", adminEmail, adminPassword)
	} else {
		log.Printf("Default admin created: %s", adminEmail)
	}
	return nil
}
