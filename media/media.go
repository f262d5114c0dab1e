// Package media runs the image ingestion pipeline: compress, obtain upload
// credentials, upload to the configured CDN.
package media

import (
	"context"
	"errors"
)

var (
	ErrCompress     = errors.New("compression failed")
	ErrAuthFailed   = errors.New("authentication failed")
	ErrUploadFailed = errors.New("upload failed")
	ErrDeleteFailed = errors.New("delete failed")
)

// Credentials is a short-lived signed upload window.
type Credentials struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"`
	Signature string `json:"signature"`
}

// UploadRequest is what a Store receives once the image is compressed.
type UploadRequest struct {
	FileName    string
	ContentType string
	Data        []byte
	Folder      string
	// Credentials is nil for stores that authenticate on their own.
	Credentials *Credentials
}

// UploadResult identifies a stored image.
type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"file_id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
}

// Store is an image CDN backend.
type Store interface {
	Upload(ctx context.Context, req UploadRequest) (UploadResult, error)
	Delete(ctx context.Context, fileID string) error
	Provider() string
}

// CredentialSource mints or fetches upload credentials.
type CredentialSource interface {
	Credentials(ctx context.Context) (Credentials, error)
}
