package imagekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"catalog-admin/media"
)

const (
	DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"
	DefaultAPIURL    = "https://api.imagekit.io/v1"
)

// Client uploads with signed client-side credentials and deletes with the
// private key over basic auth.
type Client struct {
	PrivateKey string
	UploadURL  string
	APIURL     string
	HTTPClient *http.Client
}

func NewClient(privateKey string) *Client {
	return &Client{
		PrivateKey: privateKey,
		UploadURL:  DefaultUploadURL,
		APIURL:     DefaultAPIURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) Provider() string { return "imagekit" }

type uploadResponse struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *Client) Upload(ctx context.Context, req media.UploadRequest) (media.UploadResult, error) {
	if req.Credentials == nil {
		return media.UploadResult{}, fmt.Errorf("imagekit upload requires signed credentials")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", req.FileName)
	if err != nil {
		return media.UploadResult{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(req.Data); err != nil {
		return media.UploadResult{}, fmt.Errorf("write file part: %w", err)
	}
	fields := map[string]string{
		"fileName":          req.FileName,
		"publicKey":         req.Credentials.Token,
		"signature":         req.Credentials.Signature,
		"expire":            strconv.FormatInt(req.Credentials.Expire, 10),
		"token":             req.Credentials.Token,
		"useUniqueFileName": "true",
	}
	if req.Folder != "" {
		fields["folder"] = req.Folder
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return media.UploadResult{}, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.Close(); err != nil {
		return media.UploadResult{}, fmt.Errorf("close multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.UploadURL, &body)
	if err != nil {
		return media.UploadResult{}, fmt.Errorf("build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return media.UploadResult{}, fmt.Errorf("execute upload request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return media.UploadResult{}, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return media.UploadResult{}, statusError("upload", resp.StatusCode, raw)
	}

	var out uploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return media.UploadResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	return media.UploadResult{URL: out.URL, FileID: out.FileID, Name: out.Name}, nil
}

func (c *Client) Delete(ctx context.Context, fileID string) error {
	if c.PrivateKey == "" {
		return ErrMissingCredentials
	}
	if fileID == "" {
		return fmt.Errorf("file id is required")
	}

	endpoint := fmt.Sprintf("%s/files/%s", c.APIURL, url.PathEscape(fileID))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	httpReq.SetBasicAuth(c.PrivateKey, "")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("execute delete request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return statusError("delete", resp.StatusCode, raw)
	}
	return nil
}

func statusError(op string, status int, body []byte) error {
	var e apiError
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return fmt.Errorf("imagekit %s returned %d: %s", op, status, e.Message)
	}
	return fmt.Errorf("imagekit %s returned %d", op, status)
}
