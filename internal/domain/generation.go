package domain

import (
	"context"
	"errors"
	"strings"
)

// AspectRatio is the fixed output shape for phone wallpapers
const AspectRatio = "9:16"

// Fixed user-facing messages. Raw transport errors are never shown to the
// user; they go to the log only.
const (
	MsgEmptyPrompt      = "Please enter a prompt to generate a wallpaper."
	MsgGenerationFailed = "Failed to generate wallpaper. Please try again."
)

var (
	// ErrEmptyPrompt is returned when a submission carries no usable prompt
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrNoImage is returned when a download is requested without a result
	ErrNoImage = errors.New("no generated image available")
)

// GenerationRequest represents the parameters for a wallpaper generation
type GenerationRequest struct {
	Prompt      string
	Style       string
	AspectRatio string
}

// NewGenerationRequest builds a request with the trimmed prompt and the
// fixed phone aspect ratio
func NewGenerationRequest(prompt, style string) GenerationRequest {
	return GenerationRequest{
		Prompt:      strings.TrimSpace(prompt),
		Style:       style,
		AspectRatio: AspectRatio,
	}
}

// Validate checks the request preconditions for submission
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// GenerationResponse represents the response from the wallpaper backend
type GenerationResponse struct {
	Success     bool
	ImageURL    string
	Prompt      string
	AspectRatio string
	Error       string
}

// WallpaperClient defines the interface for the wallpaper backend operations
type WallpaperClient interface {
	// Generate issues a single wallpaper generation request
	Generate(ctx context.Context, req GenerationRequest) (*GenerationResponse, error)

	// FetchImage retrieves the bytes behind a generated image reference
	FetchImage(ctx context.Context, url string) ([]byte, error)
}
