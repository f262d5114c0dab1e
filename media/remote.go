package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"syscall"
	"time"
)

// MaxRemoteImageSize caps the size of an image imported from a URL.
const MaxRemoteImageSize = 10 << 20

const maxRemoteRedirects = 5

var privateRanges = []*net.IPNet{
	parseCIDR("10.0.0.0/8"),
	parseCIDR("172.16.0.0/12"),
	parseCIDR("192.168.0.0/16"),
	parseCIDR("127.0.0.0/8"),
	parseCIDR("169.254.0.0/16"),
	parseCIDR("0.0.0.0/8"),
	parseCIDR("100.64.0.0/10"),
	parseCIDR("::1/128"),
	parseCIDR("fc00::/7"),
	parseCIDR("fe80::/10"),
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR: %s", cidr))
	}
	return network
}

func isPrivateIP(ip net.IP) bool {
	for _, r := range privateRanges {
		if r.Contains(ip) {
			return true
		}
	}
	return false
}

// ValidateExternalURL rejects URLs that are not http(s) or that resolve to
// loopback, link-local or private addresses.
func ValidateExternalURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme '%s' is not allowed; only http and https are permitted", parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("requests to localhost are not allowed")
	}

	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("failed to resolve hostname '%s': %v", host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("URL resolves to private IP address %s, which is not allowed", ip.String())
		}
	}
	return nil
}

// publicOnlyControl refuses to connect to private addresses. It runs after DNS
// resolution, so a host that re-resolves to an internal IP is still refused.
func publicOnlyControl(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || isPrivateIP(ip) {
		return fmt.Errorf("connection to private IP address %s is not allowed", host)
	}
	return nil
}

// RemoteFetcher downloads images from external URLs for import into the library.
// Validate runs on the requested URL and on every redirect target.
type RemoteFetcher struct {
	Client   *http.Client
	Validate func(rawURL string) error
	MaxSize  int64
}

func NewRemoteFetcher() *RemoteFetcher {
	dialer := &net.Dialer{Timeout: 10 * time.Second, Control: publicOnlyControl}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	return &RemoteFetcher{
		Client:   &http.Client{Timeout: 30 * time.Second, Transport: transport},
		Validate: ValidateExternalURL,
		MaxSize:  MaxRemoteImageSize,
	}
}

func (f *RemoteFetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRemoteRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRemoteRedirects)
	}
	if f.Validate != nil {
		if err := f.Validate(req.URL.String()); err != nil {
			return fmt.Errorf("redirect to %s blocked: %v", req.URL.Redacted(), err)
		}
	}
	return nil
}

// Fetch returns the image body and a file name derived from the URL path.
func (f *RemoteFetcher) Fetch(ctx context.Context, rawURL string) (io.Reader, string, error) {
	if f.Validate != nil {
		if err := f.Validate(rawURL); err != nil {
			return nil, "", fmt.Errorf("URL validation failed for %s: %v", rawURL, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}
	client := http.Client{Timeout: 30 * time.Second}
	if f.Client != nil {
		client = *f.Client
	}
	client.CheckRedirect = f.checkRedirect

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image from %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("URL %s returned non-image content-type: %q", rawURL, contentType)
	}

	limit := f.MaxSize
	if limit <= 0 {
		limit = MaxRemoteImageSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("image at %s exceeds %d bytes", rawURL, limit)
	}

	name := "image"
	if u, err := url.Parse(rawURL); err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			name = base
		}
	}
	return bytes.NewReader(data), name, nil
}
