package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPCredentialSource fetches credentials from a remote minting endpoint.
type HTTPCredentialSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPCredentialSource(url string) *HTTPCredentialSource {
	return &HTTPCredentialSource{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *HTTPCredentialSource) Credentials(ctx context.Context) (Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Credentials{}, fmt.Errorf("build auth request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("execute auth request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Credentials{}, fmt.Errorf("read auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return Credentials{}, fmt.Errorf("auth endpoint returned %d: %s", resp.StatusCode, payload.Error)
		}
		return Credentials{}, fmt.Errorf("auth endpoint returned %d", resp.StatusCode)
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode auth response: %w", err)
	}
	if creds.Token == "" || creds.Signature == "" || creds.Expire == 0 {
		return Credentials{}, fmt.Errorf("auth endpoint returned incomplete credentials")
	}
	return creds, nil
}
