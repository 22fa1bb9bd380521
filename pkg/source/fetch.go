package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is the browser-like agent every adapter sends.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

// ErrStatus is returned for non-2xx upstream responses.
var ErrStatus = errors.New("unexpected status")

// Cache stores raw response bodies keyed by URL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, body []byte) error
}

// FetchOptions configures a Fetcher.
type FetchOptions struct {
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
	Cache     Cache
}

// Fetcher performs the single GET each adapter needs.
type Fetcher struct {
	client    *http.Client
	userAgent string
	cache     Cache
}

// NewFetcher creates a fetcher. Zero options fall back to a 10s timeout and
// DefaultUserAgent; a nil Cache disables caching.
func NewFetcher(opts FetchOptions) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Fetcher{
		client:    client,
		userAgent: opts.UserAgent,
		cache:     opts.Cache,
	}
}

// Get fetches url and returns the body of a 2xx response.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(ctx, url); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "et,en")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: %w %d", url, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}

	if f.cache != nil {
		// Put logs its own failures; a failed write only costs a refetch.
		_ = f.cache.Put(ctx, url, body)
	}
	return body, nil
}
