package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/basel-ax/wallgen/internal/domain"
	"github.com/basel-ax/wallgen/internal/repository"
)

// GenerationController owns the prompt/style form state and drives the
// single outbound generation call. At most one request is in flight at a
// time; a submit while generating is a no-op.
type GenerationController struct {
	client      domain.WallpaperClient
	history     repository.HistoryRepository
	downloadDir string

	mu     sync.Mutex
	prompt string
	style  string
	status domain.Status
	result domain.GenerationResult
}

// Snapshot is an immutable view of the controller state for rendering
type Snapshot struct {
	Prompt   string
	Style    string
	Status   domain.Status
	ImageURL string
	Message  string
}

// NewGenerationController creates a controller. The history repository may
// be nil, which disables outcome recording.
func NewGenerationController(client domain.WallpaperClient, history repository.HistoryRepository, downloadDir string) *GenerationController {
	return &GenerationController{
		client:      client,
		history:     history,
		downloadDir: downloadDir,
		status:      domain.StatusIdle,
	}
}

// UpdatePrompt stores the prompt text as typed, without validation
func (c *GenerationController) UpdatePrompt(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompt = text
}

// UpdateStyle stores the selected style label
func (c *GenerationController) UpdateStyle(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.style = label
}

// Snapshot returns the current state for rendering
func (c *GenerationController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Prompt:   c.prompt,
		Style:    c.style,
		Status:   c.status,
		ImageURL: c.result.ImageURL,
		Message:  c.result.ErrorMessage,
	}
}

// Submit validates the prompt and issues exactly one generation request.
// An empty prompt fails locally without touching the network. While a
// request is in flight further submits are ignored.
func (c *GenerationController) Submit(ctx context.Context) error {
	c.mu.Lock()

	if !c.status.CanSubmit() {
		c.mu.Unlock()
		return nil
	}

	if strings.TrimSpace(c.prompt) == "" {
		failed := domain.FailedResult(domain.MsgEmptyPrompt)
		c.status = domain.StatusFailed
		c.result = failed
		req := domain.NewGenerationRequest(c.prompt, c.style)
		c.mu.Unlock()
		c.record(ctx, req, domain.StatusFailed, failed)
		return domain.ErrEmptyPrompt
	}

	req := domain.NewGenerationRequest(c.prompt, c.style)
	c.status = domain.StatusGenerating
	c.result = domain.GenerationResult{}
	c.mu.Unlock()

	requestID := uuid.New().String()
	log.Printf("[%s] generating wallpaper, prompt length %d, style %q", requestID, len(req.Prompt), req.Style)

	status, result := c.perform(ctx, requestID, req)

	c.mu.Lock()
	c.status = status
	c.result = result
	c.mu.Unlock()

	c.record(ctx, req, status, result)
	return nil
}

// perform runs the outbound call and maps the response onto a terminal
// state. Transport detail stays in the log; the user sees fixed messages.
func (c *GenerationController) perform(ctx context.Context, requestID string, req domain.GenerationRequest) (domain.Status, domain.GenerationResult) {
	resp, err := c.client.Generate(ctx, req)
	if err != nil {
		log.Printf("[%s] wallpaper request failed: %v", requestID, err)
		return domain.StatusFailed, domain.FailedResult(domain.MsgGenerationFailed)
	}

	if resp.Success && resp.ImageURL != "" {
		log.Printf("[%s] wallpaper generated: %s", requestID, resp.ImageURL)
		return domain.StatusSucceeded, domain.SucceededResult(resp.ImageURL)
	}

	message := resp.Error
	if message == "" {
		message = domain.MsgGenerationFailed
	}
	log.Printf("[%s] backend reported failure: %q", requestID, message)
	return domain.StatusFailed, domain.FailedResult(message)
}

// Download fetches the current image and saves it with a timestamp-based
// name under the download directory. It fails when no image exists.
func (c *GenerationController) Download(ctx context.Context) (string, error) {
	c.mu.Lock()
	imageURL := c.result.ImageURL
	c.mu.Unlock()

	if imageURL == "" {
		return "", domain.ErrNoImage
	}

	data, err := c.client.FetchImage(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}

	if err := os.MkdirAll(c.downloadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	filename := fmt.Sprintf("wallpaper-%d%s", time.Now().Unix(), imageExt(imageURL))
	path := filepath.Join(c.downloadDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return path, nil
}

// imageExt derives the saved file extension from the image reference,
// falling back to .png when the URL does not carry a usable one
func imageExt(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ".png"
	}
	switch ext := path.Ext(u.Path); ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ext
	default:
		return ".png"
	}
}

// record persists the outcome when a history repository is configured.
// History failures are logged and never surfaced to the user.
func (c *GenerationController) record(ctx context.Context, req domain.GenerationRequest, status domain.Status, result domain.GenerationResult) {
	if c.history == nil {
		return
	}

	entry := repository.HistoryEntry{
		Prompt:       req.Prompt,
		Style:        req.Style,
		Status:       status.String(),
		ImageURL:     result.ImageURL,
		ErrorMessage: result.ErrorMessage,
	}
	if err := c.history.Save(ctx, entry); err != nil {
		log.Printf("Error saving history entry: %v", err)
	}
}
