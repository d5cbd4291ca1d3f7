// Package fetcher retrieves archived committee pages, over HTTP or from a
// local mirror directory.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher downloads pages over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// New creates a new Fetcher with the given options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "conf-roster/1.0",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the content at the given URL.
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html, application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return body, nil
}

// LocalPath maps an archive URL to a file under a local mirror root. The
// protocol is stripped and the first path segment becomes a domain directory,
// skipped when root already ends in it. Directory-style URLs (no dot in the
// path, or a trailing slash) get index.html appended.
func LocalPath(root, url string) string {
	withoutProtocol := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")

	domain, rest, _ := strings.Cut(withoutProtocol, "/")

	base := root
	if filepath.Base(root) != domain {
		base = filepath.Join(root, domain)
	}

	full := filepath.Join(base, filepath.FromSlash(rest))
	if !strings.Contains(rest, ".") || strings.HasSuffix(rest, "/") {
		full = filepath.Join(full, "index.html")
	}
	return full
}

// FetchLocal reads the local mirror file that corresponds to the URL.
func (f *Fetcher) FetchLocal(root, url string) ([]byte, error) {
	localPath := LocalPath(root, url)
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("reading local file %s: %w", localPath, err)
	}
	return data, nil
}
