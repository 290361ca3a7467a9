package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const responsePreviewLimit = 500

// Client posts report payloads to the configured automation webhook.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient builds a webhook client. An empty URL is allowed; Push then
// reports a configuration failure instead of attempting a request.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the configured destination, empty when unset.
func (c *Client) URL() string {
	return c.url
}

// PushResult reports the outcome of one webhook delivery. Success means the
// request completed over the wire; the receiver's status code is passed
// through for the caller to interpret.
type PushResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"n8n_status_code,omitempty"`
	Response   string `json:"n8n_response,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Push serializes the payload and POSTs it as JSON. Transport and encoding
// failures come back as a failure result, never as a Go error, so callers can
// serialize the outcome directly.
func (c *Client) Push(ctx context.Context, payload interface{}) PushResult {
	if c.url == "" {
		return PushResult{Success: false, Error: "webhook URL not configured"}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return PushResult{Success: false, Error: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return PushResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PushResult{Success: false, Error: err.Error()}
	}
	defer resp.Body.Close()

	preview, _ := io.ReadAll(io.LimitReader(resp.Body, responsePreviewLimit))
	return PushResult{
		Success:    true,
		Message:    "Datos enviados a n8n exitosamente",
		StatusCode: resp.StatusCode,
		Response:   string(preview),
	}
}
