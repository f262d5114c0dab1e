// Package firebase stores library images in a Firebase Storage bucket.
package firebase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"catalog-admin/media"
	"catalog-admin/utils"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeFilename removes special characters from filenames and limits length.
func sanitizeFilename(filename string) string {
	sanitized := unsafeFilenameChars.ReplaceAllString(filename, "_")

	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}

	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}

	return sanitized
}

func objectPath(folder, filename string, at time.Time) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "media"
	}
	return fmt.Sprintf("%s/%d_%s", folder, at.Unix(), sanitizeFilename(filename))
}

func publicURL(bucket, path string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, path)
}

// NewApp initializes Firebase from GOOGLE_APPLICATION_CREDENTIALS-style input:
// either inline JSON or a path to a service account file.
func NewApp(ctx context.Context, credentials string) (*firebase.App, error) {
	var opts []option.ClientOption

	if credentials != "" {
		if strings.HasPrefix(credentials, "{") {
			log.Println("Using Firebase credentials from environment variable")
			opts = append(opts, option.WithCredentialsJSON([]byte(credentials)))
		} else {
			log.Println("Using Firebase credentials from file:", credentials)
			opts = append(opts, option.WithCredentialsFile(credentials))
		}
	} else {
		log.Println("Warning: GOOGLE_APPLICATION_CREDENTIALS not set, using default credentials")
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init failed: %w", err)
	}
	return app, nil
}

type Store struct {
	app    *firebase.App
	bucket string
	folder string
}

func NewStore(app *firebase.App, bucket, folder string) (*Store, error) {
	if app == nil {
		return nil, fmt.Errorf("firebase app not initialized")
	}
	if bucket == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET not set")
	}
	return &Store{app: app, bucket: bucket, folder: folder}, nil
}

func (s *Store) Provider() string { return "firebase" }

func (s *Store) bucketHandle(ctx context.Context) (*storage.BucketHandle, error) {
	client, err := s.app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage client: %w", err)
	}
	bucket, err := client.Bucket(s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	return bucket, nil
}

func (s *Store) Upload(ctx context.Context, req media.UploadRequest) (media.UploadResult, error) {
	bucket, err := s.bucketHandle(ctx)
	if err != nil {
		return media.UploadResult{}, err
	}

	folder := req.Folder
	if folder == "" {
		folder = s.folder
	}
	path := objectPath(folder, req.FileName, time.Now())

	obj := bucket.Object(path)
	wc := obj.NewWriter(ctx)
	wc.ContentType = req.ContentType

	if _, err := io.Copy(wc, bytes.NewReader(req.Data)); err != nil {
		wc.Close()
		return media.UploadResult{}, fmt.Errorf("failed to write object %s: %w", path, err)
	}
	if err := wc.Close(); err != nil {
		return media.UploadResult{}, fmt.Errorf("failed to finalize upload: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		log.Printf("Warning: failed to set public ACL on %s: %v", path, err)
	}

	return media.UploadResult{
		URL:    publicURL(s.bucket, path),
		FileID: path,
		Name:   req.FileName,
	}, nil
}

// Delete accepts an object path or a full storage URL.
func (s *Store) Delete(ctx context.Context, fileID string) error {
	path, err := utils.ExtractObjectPath(fileID)
	if err != nil {
		return fmt.Errorf("invalid file id %q: %w", fileID, err)
	}

	bucket, err := s.bucketHandle(ctx)
	if err != nil {
		return err
	}
	if err := bucket.Object(path).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}

	log.Printf("Deleted file %s from bucket %s", path, s.bucket)
	return nil
}
