package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/basel-ax/wallgen/internal/domain"
	"github.com/basel-ax/wallgen/internal/preview"
	"github.com/basel-ax/wallgen/internal/repository"
	"github.com/basel-ax/wallgen/internal/service"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const historyLimit = 8

// Server wires the gin router to the generation controller
type Server struct {
	engine     *gin.Engine
	controller *service.GenerationController
	history    repository.HistoryRepository
	styles     []string
}

// pageData feeds the phone-frame page template
type pageData struct {
	Prompt     string
	Style      string
	Styles     []string
	Generating bool
	Message    string
	Preview    preview.View
	History    []repository.HistoryEntry
}

// New creates the server. The history repository may be nil.
func New(controller *service.GenerationController, history repository.HistoryRepository) *Server {
	s := &Server{
		engine:     gin.Default(),
		controller: controller,
		history:    history,
		styles:     []string{"minimalist", "abstract", "cyberpunk", "nature", "gradient"},
	}

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/generate", s.handleGenerate)
	s.engine.POST("/download", s.handleDownload)
	s.engine.GET("/healthz", s.handleHealthz)

	return s
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c)
}

func (s *Server) handleGenerate(c *gin.Context) {
	s.controller.UpdatePrompt(c.PostForm("prompt"))
	s.controller.UpdateStyle(c.PostForm("style"))

	// The call completes before the page re-renders; validation failures
	// surface through the snapshot message, not as an HTTP error.
	_ = s.controller.Submit(c.Request.Context())

	s.renderPage(c)
}

func (s *Server) handleDownload(c *gin.Context) {
	path, err := s.controller.Download(c.Request.Context())
	if errors.Is(err, domain.ErrNoImage) {
		c.JSON(http.StatusConflict, gin.H{"error": "no generated image to download"})
		return
	}
	if err != nil {
		log.Printf("Error downloading wallpaper: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "download failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": path})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
}

func (s *Server) renderPage(c *gin.Context) {
	snap := s.controller.Snapshot()

	data := pageData{
		Prompt:     snap.Prompt,
		Style:      snap.Style,
		Styles:     s.styles,
		Generating: snap.Status == domain.StatusGenerating,
		Message:    snap.Message,
		Preview:    preview.Render(snap.ImageURL, snap.Status == domain.StatusGenerating),
		History:    s.recentHistory(c.Request.Context()),
	}

	c.HTML(http.StatusOK, "index.html.tmpl", data)
}

func (s *Server) recentHistory(ctx context.Context) []repository.HistoryEntry {
	if s.history == nil {
		return nil
	}
	entries, err := s.history.Recent(ctx, historyLimit)
	if err != nil {
		log.Printf("Error loading history: %v", err)
		return nil
	}
	return entries
}
