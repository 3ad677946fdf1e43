package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Recognize submits one snapshot to the recognition endpoint. A Status of
// "success" carries the matched name and timestamp; anything else means the
// face was not recognized (including "model not trained" style statuses).
func (c *Client) Recognize(ctx context.Context, data []byte) (*RecognizeResponse, error) {
	return doMultipartJSON[RecognizeResponse](ctx, c, "recognize", nil, "file", "capture.jpg", data)
}

// Export downloads the attendance spreadsheet. On success the raw CSV bytes
// are returned with an empty status; when the service has nothing to export
// it answers with a JSON status body instead, which is returned as status.
func (c *Client) Export(ctx context.Context) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL("export"), nil)
	if err != nil {
		return nil, "", fmt.Errorf("could not create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL built from validated parsedURL via resolveURL
	if err != nil {
		return nil, "", fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("could not read response body: %w", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var status StatusResponse
		if err := json.Unmarshal(body, &status); err != nil {
			return nil, "", fmt.Errorf("could not unmarshal response: %w", err)
		}
		return nil, status.Status, nil
	}

	return body, "", nil
}
