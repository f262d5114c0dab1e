package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const DefaultUploadTimeout = 60 * time.Second

// Uploader runs compress, credentials and upload in that order. A failing
// step aborts the remaining ones.
type Uploader struct {
	store       Store
	credentials CredentialSource
	folder      string
	timeout     time.Duration
}

// NewUploader wires a store with an optional credential source. When
// credentials is nil the store is expected to authenticate itself.
func NewUploader(store Store, credentials CredentialSource, folder string, timeout time.Duration) *Uploader {
	if timeout <= 0 {
		timeout = DefaultUploadTimeout
	}
	return &Uploader{
		store:       store,
		credentials: credentials,
		folder:      folder,
		timeout:     timeout,
	}
}

// Provider names the backing store.
func (u *Uploader) Provider() string {
	return u.store.Provider()
}

// Upload compresses r with opts and stores it under fileName.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, fileName string, opts CompressOptions) (UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	compressed, err := Compress(r, opts)
	if err != nil {
		return UploadResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return UploadResult{}, fmt.Errorf("upload aborted after compression: %w", err)
	}

	req := UploadRequest{
		FileName:    JPEGFileName(fileName),
		ContentType: "image/jpeg",
		Data:        compressed.Data,
		Folder:      u.folder,
	}

	if u.credentials != nil {
		creds, err := u.credentials.Credentials(ctx)
		if err != nil {
			return UploadResult{}, fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		req.Credentials = &creds
	}

	result, err := u.store.Upload(ctx, req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if result.URL == "" {
		return UploadResult{}, fmt.Errorf("%w: store returned no URL", ErrUploadFailed)
	}
	if result.Name == "" {
		result.Name = req.FileName
	}
	result.Width = compressed.Width
	result.Height = compressed.Height
	result.Size = len(compressed.Data)
	return result, nil
}

// Delete removes a stored image by its CDN file id. Failures are returned, not retried.
func (u *Uploader) Delete(ctx context.Context, fileID string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if err := u.store.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// JPEGFileName swaps the extension of name for .jpg, since every upload is re-encoded.
func JPEGFileName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "image"
	}
	return base + ".jpg"
}
