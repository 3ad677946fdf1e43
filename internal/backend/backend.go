// Package backend wraps the remote face-recognition attendance service in
// typed request/response calls. The service owns all persistence (students,
// teachers, attendance, the trained model); this client performs no retries
// and keeps no cache.
package backend

import (
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Client represents a client for the attendance service API
type Client struct {
	URL       string
	parsedURL *url.URL
}

// New creates a new attendance service client for the given base address.
func New(rawURL string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend URL: %q", rawURL)
	}
	return &Client{URL: strings.TrimRight(rawURL, "/"), parsedURL: parsed}, nil
}

// resolveURL builds a full URL from the base address and the given path
// segments. Segments are joined as-is, so callers must path-escape any
// user-provided identifiers first.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	return c.URL + "/" + strings.Join(pathSegments, "/")
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
