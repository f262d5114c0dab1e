package utils

import (
	"fmt"
	"strings"
)

var storageURLPrefixes = []string{
	"https://storage.googleapis.com/",
	"https://firebasestorage.googleapis.com/v0/b/",
	"gs://",
}

// ExtractObjectPath returns the bucket-relative object path of a Cloud Storage URL.
// A value that is already a bare object path is returned unchanged.
func ExtractObjectPath(url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("empty URL")
	}

	for _, prefix := range storageURLPrefixes {
		if !strings.HasPrefix(url, prefix) {
			continue
		}
		parts := strings.SplitN(strings.TrimPrefix(url, prefix), "/", 2)
		if len(parts) != 2 || parts[1] == "" {
			return "", fmt.Errorf("invalid URL format")
		}
		path := parts[1]
		// Firebase download URLs look like <bucket>/o/<escaped path>?alt=media
		if prefix == "https://firebasestorage.googleapis.com/v0/b/" {
			path = strings.TrimPrefix(path, "o/")
			if i := strings.Index(path, "?"); i >= 0 {
				path = path[:i]
			}
			path = strings.ReplaceAll(path, "%2F", "/")
		}
		return path, nil
	}

	if strings.Contains(url, "://") {
		return "", fmt.Errorf("invalid URL")
	}
	return url, nil
}
