package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// doGetJSON performs a GET request and unmarshals the JSON response into the
// result type. The endpoint is the path after the base address (e.g. "students").
func doGetJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	return doJSON[T](req)
}

// doFormJSON performs a request with a form-urlencoded body and unmarshals
// the JSON response. The service accepts scalar fields as form data.
func doFormJSON[T any](ctx context.Context, c *Client, method, endpoint string, form url.Values) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(endpoint), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doJSON[T](req)
}

// doMultipartJSON performs a POST with a multipart body carrying optional
// scalar fields plus one file part, and unmarshals the JSON response.
func doMultipartJSON[T any](ctx context.Context, c *Client, endpoint string, fields map[string]string, fileField, fileName string, data []byte) (*T, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("could not write form field: %w", err)
		}
	}

	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("could not copy file data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), &body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return doJSON[T](req)
}

// doDeleteRaw performs a DELETE request and checks only the HTTP status.
// The service's delete endpoints return inconsistent body shapes, and the
// caller re-fetches state afterwards anyway.
func doDeleteRaw(ctx context.Context, c *Client, pathSegments ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.resolveURL(pathSegments...), nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL built from validated parsedURL via resolveURL
	if err != nil {
		return fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}
	return nil
}

// doJSON sends the prepared request and unmarshals the JSON response body.
func doJSON[T any](req *http.Request) (*T, error) {
	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL built from validated parsedURL via resolveURL
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}
	return &result, nil
}
