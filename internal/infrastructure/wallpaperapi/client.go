package wallpaperapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/basel-ax/wallgen/internal/domain"
)

const generatePath = "/api/generate-wallpaper"

// Client represents the wallpaper backend API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new wallpaper backend client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Generate implements the wallpaper generation request
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	payload := struct {
		Prompt      string `json:"prompt"`
		Style       string `json:"style"`
		AspectRatio string `json:"aspect_ratio"`
	}{
		Prompt:      req.Prompt,
		Style:       req.Style,
		AspectRatio: req.AspectRatio,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Success     bool   `json:"success"`
		ImageURL    string `json:"image_url"`
		Prompt      string `json:"prompt"`
		AspectRatio string `json:"aspect_ratio"`
		Error       string `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &domain.GenerationResponse{
		Success:     result.Success,
		ImageURL:    result.ImageURL,
		Prompt:      result.Prompt,
		AspectRatio: result.AspectRatio,
		Error:       result.Error,
	}, nil
}

// FetchImage downloads the bytes behind a generated image reference
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}

	return data, nil
}
