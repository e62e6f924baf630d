// Package fetch pulls live presentation state from the controller's HTTP API.
//
// Two endpoints are used: the live item list (slides of the current service
// item plus its name) and the high-resolution variant of the live image.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/stageview/internal/model"
)

// Endpoint paths relative to the API base URL.
const (
	LiveItemsPath = "/api/v2/controller/live-items"
	LiveImagePath = "/api/v2/core/live-image"
)

// maxBodyBytes caps a response body. Live images arrive base64 encoded.
const maxBodyBytes = 32 << 20

// Client talks to the controller API. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client for baseURL (e.g. "http://localhost:4316")
// with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 2),
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// LiveItems fetches the live item list. Non-200 responses and malformed
// JSON are errors.
func (c *Client) LiveItems(ctx context.Context) (model.ItemList, error) {
	var list model.ItemList
	if err := c.getJSON(ctx, LiveItemsPath, &list); err != nil {
		return model.ItemList{}, err
	}
	return list, nil
}

// liveImageResponse is the live-image payload.
type liveImageResponse struct {
	BinaryImage string `json:"binary_image"`
}

// LiveImage fetches the high-resolution live image. An empty image is
// reported as an error so callers fall back to their own reference.
func (c *Client) LiveImage(ctx context.Context) (string, error) {
	var resp liveImageResponse
	if err := c.getJSON(ctx, LiveImagePath, &resp); err != nil {
		return "", err
	}
	if resp.BinaryImage == "" {
		return "", fmt.Errorf("live image: empty binary_image")
	}
	return resp.BinaryImage, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stageview/0.2")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
