package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-admin/media"
	"catalog-admin/models"

	"gorm.io/gorm"
)

func newTestUploader(store *mockStore, creds *mockCredentials) *media.Uploader {
	if creds == nil {
		return media.NewUploader(store, nil, "library", 0)
	}
	return media.NewUploader(store, creds, "library", 0)
}

func TestUploadMediaRunsChainInOrder(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	var calls []string
	store := newMockStore(&calls)
	router := setupMediaRouter(db, newTestUploader(store, &mockCredentials{Calls: &calls}), nil)

	req := multipartRequest("/api/admin/media", map[string]string{"preset": "thumbnail"}, "sofa.png", "image/png", pngBytes(1600, 1200), token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	if strings.Join(calls, ",") != "credentials,upload" {
		t.Errorf("expected credentials then upload, got %v", calls)
	}
	if len(store.Uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(store.Uploads))
	}
	up := store.Uploads[0]
	if up.FileName != "sofa.jpg" || up.ContentType != "image/jpeg" {
		t.Errorf("expected re-encoded sofa.jpg, got %s (%s)", up.FileName, up.ContentType)
	}
	if up.Credentials == nil || up.Credentials.Token != "public_test" {
		t.Errorf("expected credentials to be passed to the store, got %+v", up.Credentials)
	}

	resp := parseResponse(w)
	if resp["width"] != float64(800) || resp["height"] != float64(600) {
		t.Errorf("expected 800x600 thumbnail, got %vx%v", resp["width"], resp["height"])
	}
	if resp["provider"] != "mock" {
		t.Errorf("expected provider mock, got %v", resp["provider"])
	}

	var count int64
	db.Model(&models.MediaAsset{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 media asset, got %d", count)
	}
}

func TestUploadMediaAuthFailureSkipsUpload(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	store := newMockStore(nil)
	creds := &mockCredentials{Err: errors.New("auth endpoint returned 500")}
	router := setupMediaRouter(db, newTestUploader(store, creds), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/admin/media", nil, "sofa.png", "image/png", pngBytes(10, 10), token))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["error"] != "Upload authentication failed" {
		t.Errorf("unexpected error %v", resp["error"])
	}
	if len(store.Uploads) != 0 {
		t.Errorf("expected no upload after auth failure, got %d", len(store.Uploads))
	}
}

func TestUploadMediaCompressionFailure(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	var calls []string
	store := newMockStore(&calls)
	router := setupMediaRouter(db, newTestUploader(store, &mockCredentials{Calls: &calls}), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/admin/media", nil, "broken.png", "image/png", []byte("not really a png"), token))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}
	if len(calls) != 0 {
		t.Errorf("expected no credentials or upload after compression failure, got %v", calls)
	}
}

func TestUploadMediaStoreFailure(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	store := newMockStore(nil)
	store.UploadFn = func(req media.UploadRequest) (media.UploadResult, error) {
		return media.UploadResult{}, errors.New("imagekit upload returned 403")
	}
	router := setupMediaRouter(db, newTestUploader(store, nil), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/admin/media", nil, "sofa.png", "image/png", pngBytes(10, 10), token))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.MediaAsset{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no media asset recorded, got %d", count)
	}
}

func TestUploadMediaRejectsBadInput(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupMediaRouter(db, newTestUploader(newMockStore(nil), nil), nil)

	tests := []struct {
		name        string
		fields      map[string]string
		filename    string
		contentType string
	}{
		{"missing file", nil, "", ""},
		{"wrong type", nil, "notes.pdf", "application/pdf"},
		{"unknown preset", map[string]string{"preset": "poster"}, "sofa.png", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, multipartRequest("/api/admin/media", tt.fields, tt.filename, tt.contentType, pngBytes(4, 4), token))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUploadMediaNotConfigured(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupMediaRouter(db, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest("/api/admin/media", nil, "sofa.png", "image/png", pngBytes(4, 4), token))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d: %s", w.Code, w.Body.String())
	}
}

func TestImportMedia(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	store := newMockStore(nil)
	fetcher := &mockFetcher{Data: pngBytes(3000, 1000), Name: "banner.png"}
	router := setupMediaRouter(db, newTestUploader(store, nil), fetcher)

	body := map[string]string{"url": "https://images.example.com/banner.png"}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/media/import", body, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(fetcher.URLs) != 1 || fetcher.URLs[0] != body["url"] {
		t.Errorf("expected fetch of %s, got %v", body["url"], fetcher.URLs)
	}
	resp := parseResponse(w)
	if resp["width"] != float64(1920) || resp["height"] != float64(640) {
		t.Errorf("expected 1920x640 library image, got %vx%v", resp["width"], resp["height"])
	}
	if resp["name"] != "banner.jpg" {
		t.Errorf("expected name banner.jpg, got %v", resp["name"])
	}
}

func TestImportMediaFetchFailure(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	store := newMockStore(nil)
	router := setupMediaRouter(db, newTestUploader(store, nil), &mockFetcher{Err: errMockRemote})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/admin/media/import", map[string]string{"url": "https://images.example.com/x.png"}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.Uploads) != 0 {
		t.Errorf("expected no upload, got %d", len(store.Uploads))
	}
}

func TestDeleteMediaRemovesFromStoreThenDB(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	store := newMockStore(nil)
	router := setupMediaRouter(db, newTestUploader(store, nil), nil)

	asset := models.MediaAsset{FileID: "file_123", Name: "sofa.jpg", URL: "https://ik.imagekit.io/test/sofa.jpg", Provider: "mock"}
	db.Create(&asset)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/media/%s", asset.ID), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.DeleteCalls) != 1 || store.DeleteCalls[0] != "file_123" {
		t.Errorf("expected store delete of file_123, got %v", store.DeleteCalls)
	}

	var count int64
	db.Model(&models.MediaAsset{}).Count(&count)
	if count != 0 {
		t.Errorf("expected media row removed, got %d", count)
	}
}

func TestDeleteMediaStoreFailureKeepsRecord(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)

	store := newMockStore(nil)
	store.DeleteFn = func(fileID string) error { return errors.New("imagekit delete returned 500") }
	router := setupMediaRouter(db, newTestUploader(store, nil), nil)

	asset := models.MediaAsset{FileID: "file_456", Name: "rug.jpg", URL: "https://ik.imagekit.io/test/rug.jpg", Provider: "mock"}
	db.Create(&asset)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE", fmt.Sprintf("/api/admin/media/%s", asset.ID), nil, token))

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.MediaAsset{}).Count(&count)
	if count != 1 {
		t.Errorf("expected media row kept, got %d", count)
	}
}

func TestGetMediaList(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupMediaRouter(db, nil, nil)

	db.Create(&models.MediaAsset{FileID: "a", URL: "https://cdn/a.jpg", Provider: "mock"})
	db.Create(&models.MediaAsset{FileID: "b", URL: "https://cdn/b.jpg", Provider: "mock"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/media", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["total"] != float64(2) {
		t.Errorf("expected 2 assets, got %v", resp["total"])
	}
}

func TestGetMediaClampsLimit(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupMediaRouter(db, nil, nil)

	tests := []struct {
		query string
		want  float64
	}{
		{"limit=500", 200},
		{"limit=0", 50},
		{"limit=abc", 50},
		{"limit=20", 20},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authRequest("GET", "/api/admin/media?"+tt.query, nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", tt.query, w.Code)
		}
		if got := parseResponse(w)["limit"]; got != tt.want {
			t.Errorf("%s: expected limit %v, got %v", tt.query, tt.want, got)
		}
	}
}

func TestGetMediaCountFailure(t *testing.T) {
	db := freshDB()
	token := seedAdmin(db)
	router := setupMediaRouter(db, nil, nil)
	db.Create(&models.MediaAsset{FileID: "a", URL: "https://cdn/a.jpg", Provider: "mock"})

	const name = "test:fail_count"
	err := db.Callback().Query().Before("gorm:query").Register(name, func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*int64); ok {
			tx.AddError(errors.New("count failed"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	t.Cleanup(func() { db.Callback().Query().Remove(name) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/admin/media", nil, token))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d: %s", w.Code, w.Body.String())
	}
	if _, ok := parseResponse(w)["total"]; ok {
		t.Error("expected no total in error response")
	}
}

func TestUploadErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("upload aborted after compression: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{fmt.Errorf("%w: decode: bad header", media.ErrCompress), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: 500", media.ErrAuthFailed), http.StatusBadGateway},
		{fmt.Errorf("%w: 503", media.ErrUploadFailed), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got, _ := uploadError(tt.err); got != tt.want {
			t.Errorf("uploadError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
