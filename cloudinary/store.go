// Package cloudinary stores library images on Cloudinary.
package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"catalog-admin/media"
)

// Store authenticates with the API key and secret embedded in CLOUDINARY_URL,
// so it ignores signed credentials on the request.
type Store struct {
	cld    *cld.Cloudinary
	folder string
}

func NewStore(cloudinaryURL, folder string) (*Store, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is required")
	}
	c, err := cld.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &Store{cld: c, folder: folder}, nil
}

func (s *Store) Provider() string { return "cloudinary" }

func (s *Store) Upload(ctx context.Context, req media.UploadRequest) (media.UploadResult, error) {
	folder := req.Folder
	if folder == "" {
		folder = s.folder
	}
	base := strings.TrimSuffix(req.FileName, filepath.Ext(req.FileName))
	publicID := fmt.Sprintf("%s_%d", base, time.Now().UnixNano())

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(req.Data), uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
		ResourceType:   "image",
	})
	if err != nil {
		return media.UploadResult{}, fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return media.UploadResult{}, fmt.Errorf("cloudinary upload rejected: %s", result.Error.Message)
	}

	url := forceHTTPS(result.SecureURL)
	if url == "" {
		url = forceHTTPS(result.URL)
	}
	return media.UploadResult{
		URL:    url,
		FileID: result.PublicID,
		Name:   req.FileName,
	}, nil
}

func (s *Store) Delete(ctx context.Context, fileID string) error {
	if strings.Contains(fileID, "://") {
		fileID = ExtractPublicID(fileID)
	}
	if fileID == "" {
		return fmt.Errorf("public id is required")
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     fileID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary delete rejected: %s", result.Error.Message)
	}
	if result.Result != "ok" {
		return fmt.Errorf("cloudinary delete returned %q", result.Result)
	}
	return nil
}

// ExtractPublicID recovers the public id from a delivery URL such as
// https://res.cloudinary.com/demo/image/upload/v1234/folder/name.jpg.
func ExtractPublicID(url string) string {
	parts := strings.Split(url, "/")
	for i, part := range parts {
		if part != "upload" || i+1 >= len(parts) {
			continue
		}
		rest := parts[i+1:]
		if len(rest) > 1 && isVersion(rest[0]) {
			rest = rest[1:]
		}
		path := strings.Join(rest, "/")
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return ""
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func forceHTTPS(in string) string {
	out := strings.TrimSpace(in)
	return strings.Replace(out, "http://", "https://", 1)
}
