// Package source loads raw image bytes from URLs or local files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrStatus is wrapped when a remote image responds with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// DefaultMaxBytes bounds the size of a fetched image.
const DefaultMaxBytes = 64 << 20

type Fetcher struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxBytes int64
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{},
		Timeout:  timeout,
		MaxBytes: DefaultMaxBytes,
	}
}

// IsURL reports whether ref is fetched over HTTP rather than read from disk.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load returns the bytes behind ref, an http(s) URL or a file path.
func (f *Fetcher) Load(ctx context.Context, ref string) ([]byte, error) {
	if !IsURL(ref) {
		data, err := os.ReadFile(ref)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return data, nil
	}
	return f.get(ctx, ref)
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch image %s: %w: %s", url, ErrStatus, resp.Status)
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("fetch image %s: larger than %d bytes", url, limit)
	}
	return data, nil
}
