package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"

	"catalog-admin/media"
)

// mockStore is an in-memory media.Store that records every call.
type mockStore struct {
	UploadFn    func(req media.UploadRequest) (media.UploadResult, error)
	DeleteFn    func(fileID string) error
	Uploads     []media.UploadRequest
	DeleteCalls []string
	Calls       *[]string
}

func newMockStore(calls *[]string) *mockStore {
	return &mockStore{Calls: calls}
}

func (m *mockStore) Provider() string { return "mock" }

func (m *mockStore) Upload(ctx context.Context, req media.UploadRequest) (media.UploadResult, error) {
	m.Uploads = append(m.Uploads, req)
	if m.Calls != nil {
		*m.Calls = append(*m.Calls, "upload")
	}
	if m.UploadFn != nil {
		return m.UploadFn(req)
	}
	return media.UploadResult{
		URL:    "https://ik.imagekit.io/test/library/" + req.FileName,
		FileID: "file_" + req.FileName,
		Name:   req.FileName,
	}, nil
}

func (m *mockStore) Delete(ctx context.Context, fileID string) error {
	m.DeleteCalls = append(m.DeleteCalls, fileID)
	if m.DeleteFn != nil {
		return m.DeleteFn(fileID)
	}
	return nil
}

// mockCredentials hands out fixed credentials, or fails when Err is set.
type mockCredentials struct {
	Err   error
	Calls *[]string
}

func (m *mockCredentials) Credentials(ctx context.Context) (media.Credentials, error) {
	if m.Calls != nil {
		*m.Calls = append(*m.Calls, "credentials")
	}
	if m.Err != nil {
		return media.Credentials{}, m.Err
	}
	return media.Credentials{Token: "public_test", Expire: 1700003600, Signature: "sig"}, nil
}

// mockFetcher serves fixed bytes for any URL, or fails when Err is set.
type mockFetcher struct {
	Data []byte
	Name string
	Err  error
	URLs []string
}

func (m *mockFetcher) Fetch(ctx context.Context, rawURL string) (io.Reader, string, error) {
	m.URLs = append(m.URLs, rawURL)
	if m.Err != nil {
		return nil, "", m.Err
	}
	return bytes.NewReader(m.Data), m.Name, nil
}

type mockMinter struct {
	Creds media.Credentials
	Err   error
}

func (m *mockMinter) Mint() (media.Credentials, error) {
	return m.Creds, m.Err
}

var errMockRemote = errors.New("remote unavailable")
