package firebase

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeFilenameNormal(t *testing.T) {
	result := sanitizeFilename("image_test-file.jpg")
	if result != "image_test-file.jpg" {
		t.Errorf("expected 'image_test-file.jpg', got '%s'", result)
	}
}

func TestSanitizeFilenameSpecialChars(t *testing.T) {
	result := sanitizeFilename("my file (1)@#$.jpg")
	if strings.ContainsAny(result, " ()@#$") {
		t.Errorf("special chars not replaced: '%s'", result)
	}
}

func TestSanitizeFilenameTooLong(t *testing.T) {
	result := sanitizeFilename(strings.Repeat("a", 200))
	if len(result) != 100 {
		t.Errorf("expected length 100, got %d", len(result))
	}
}

func TestSanitizeFilenameEmpty(t *testing.T) {
	if result := sanitizeFilename(""); result != "file" {
		t.Errorf("expected 'file', got '%s'", result)
	}
}

func TestSanitizeFilenameDots(t *testing.T) {
	if sanitizeFilename(".") != "file" {
		t.Error("single dot should become 'file'")
	}
	if sanitizeFilename("..") != "file" {
		t.Error("double dots should become 'file'")
	}
}

func TestObjectPath(t *testing.T) {
	at := time.Unix(1700000000, 0)
	if got := objectPath("/library/", "sofa final.jpg", at); got != "library/1700000000_sofa_final.jpg" {
		t.Errorf("unexpected path %s", got)
	}
	if got := objectPath("", "a.jpg", at); got != "media/1700000000_a.jpg" {
		t.Errorf("expected default media folder, got %s", got)
	}
}

func TestPublicURL(t *testing.T) {
	got := publicURL("catalog-bucket", "media/1_a.jpg")
	if got != "https://storage.googleapis.com/catalog-bucket/media/1_a.jpg" {
		t.Errorf("unexpected url %s", got)
	}
}

func TestNewStoreValidation(t *testing.T) {
	if _, err := NewStore(nil, "bucket", "media"); err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("expected not initialized error, got %v", err)
	}
}
