package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 200
)

// Client fetches resources from an HTTP base URL.
type Client struct {
	http *resty.Client
	// BaseURL is the directory URL holding <zone>.csv and <zone>.pdf.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a client for baseURL with sensible defaults.
func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", "waktu-solat"),
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Source implements Fetcher.
func (c *Client) Source() string {
	return c.BaseURL
}

// Fetch downloads BaseURL/name. Any non-2xx answer is a *StatusError.
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	url := c.BaseURL + "/" + name

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("request %s failed: %w", url, err)
	}

	if !resp.IsSuccess() {
		body := strings.TrimSpace(string(resp.Body()))
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{URL: url, Code: resp.StatusCode(), Body: body}
	}

	return resp.Body(), nil
}

// Dir reads resources from a local directory.
type Dir struct {
	Root string
}

// Source implements Fetcher.
func (d Dir) Source() string {
	return d.Root
}

// Fetch reads Root/name.
func (d Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(d.Root, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Open picks a Fetcher for source: http(s) URLs use Client, "file://" URLs
// and plain paths use Dir.
func Open(source string) (Fetcher, error) {
	s := strings.TrimSpace(source)
	switch {
	case s == "":
		return nil, fmt.Errorf("no schedule source configured")
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return NewClient(s), nil
	case strings.HasPrefix(s, "file://"):
		return Dir{Root: strings.TrimPrefix(s, "file://")}, nil
	default:
		return Dir{Root: s}, nil
	}
}
