// Package zesty implements the media, content and auth ports against the
// Zesty.io REST APIs.
package zesty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 512

// Endpoints holds the base URLs of the Zesty services.
type Endpoints struct {
	AuthURL     string // e.g. https://auth.api.zesty.io
	MediaURL    string // e.g. https://svc.zesty.io/media-storage-service
	InstanceURL string // e.g. https://<instance ZUID>.api.zesty.io/v1
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zesty %s: status %d, body: %s", e.Op, e.StatusCode, e.Body)
}

// Client implements ports.MediaStore and ports.ContentStore.
// The http.Client is expected to add the Authorization header.
type Client struct {
	endpoints Endpoints
	client    *http.Client
}

// NewClient creates a new Client.
func NewClient(endpoints Endpoints, client *http.Client) *Client {
	return &Client{
		endpoints: trimEndpoints(endpoints),
		client:    client,
	}
}

// postJSON sends body as JSON and decodes a 2xx response into out (if non-nil).
func (c *Client) postJSON(ctx context.Context, op, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("zesty %s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("zesty %s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, op, out)
}

func (c *Client) do(req *http.Request, op string, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("zesty %s: %w", op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, op); err != nil {
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("zesty %s: decode response: %w", op, err)
	}
	return nil
}

func checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func trimEndpoints(e Endpoints) Endpoints {
	return Endpoints{
		AuthURL:     strings.TrimRight(e.AuthURL, "/"),
		MediaURL:    strings.TrimRight(e.MediaURL, "/"),
		InstanceURL: strings.TrimRight(e.InstanceURL, "/"),
	}
}
