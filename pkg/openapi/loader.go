package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// LoaderOptions configures how Fetch resolves a document location.
type LoaderOptions struct {
	// FileSystem resolves relative locations. Nil means the operating system.
	FileSystem fs.FS

	// HTTPClient fetches http(s) locations. Nil disables remote documents
	// unless AllowHTTPFallback is set.
	HTTPClient *http.Client

	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for relative paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables remote documents through a default client with
// the given timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// ErrHTTPDisabled is returned for http(s) locations when no client was
// configured.
var ErrHTTPDisabled = errors.New("openapi loader: http support disabled")

// Fetch reads the raw document at location. Locations starting with http://
// or https:// are fetched remotely; everything else is read from the
// configured filesystem.
func Fetch(ctx context.Context, location string, options ...LoaderOption) ([]byte, error) {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi loader: location is required")
	}

	var (
		data []byte
		err  error
	)
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		data, err = fetchHTTP(ctx, cfg, location)
	case cfg.FileSystem != nil:
		data, err = fs.ReadFile(cfg.FileSystem, location)
	default:
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", location, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openapi loader: %s is empty", location)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, cfg LoaderOptions, location string) ([]byte, error) {
	client := cfg.HTTPClient
	switch {
	case client != nil:
		if cfg.RequestTimeout > 0 && client.Timeout == 0 {
			clone := *client
			clone.Timeout = cfg.RequestTimeout
			client = &clone
		}
	case cfg.AllowHTTPFallback:
		client = &http.Client{Timeout: cfg.RequestTimeout}
	default:
		return nil, ErrHTTPDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
