package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/basel-ax/wallgen/internal/config"
	"github.com/basel-ax/wallgen/internal/infrastructure/wallpaperapi"
	"github.com/basel-ax/wallgen/internal/repository"
	"github.com/basel-ax/wallgen/internal/server"
	"github.com/basel-ax/wallgen/internal/service"
)

func main() {
	// Parse command line flags
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	// Configure logging
	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("Verbose logging enabled")
	} else {
		log.SetFlags(log.Ldate | log.Ltime)
	}

	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded, backend at %s", cfg.APIBaseURL)

	// Initialize optional history database
	var history repository.HistoryRepository
	if cfg.HistoryEnabled() {
		log.Println("Initializing history database connection...")
		db, err := sql.Open("postgres", cfg.GetDSN())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

		history = repository.NewPostgresHistoryRepository(db)
		log.Println("History database connection established")
	} else {
		log.Println("History database not configured, outcomes will not be recorded")
	}

	// Initialize client, controller and web server
	client := wallpaperapi.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	controller := service.NewGenerationController(client, history, cfg.DownloadDir)
	controller.UpdateStyle(cfg.DefaultStyle)
	srv := server.New(controller, history)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, initiating shutdown...", sig)
		cancel()
	}()

	// Prune old history entries on schedule
	if history != nil {
		startHistoryPruning(ctx, history, cfg.HistoryRetentionDays)
	}

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for context cancellation
	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

func startHistoryPruning(ctx context.Context, history repository.HistoryRepository, retentionDays int) {
	c := cron.New()

	_, err := c.AddFunc("0 3 * * *", func() {
		log.Println("[CRON] Pruning old history entries...")
		cutoff := time.Now().AddDate(0, 0, -retentionDays)
		deleted, err := history.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			log.Printf("[CRON] Error pruning history: %v", err)
			return
		}
		log.Printf("[CRON] Pruned %d history entries", deleted)
	})
	if err != nil {
		log.Printf("Error scheduling history pruning: %v", err)
		return
	}

	c.Start()
	log.Println("History pruning scheduler started")

	go func() {
		<-ctx.Done()
		c.Stop()
		log.Println("History pruning scheduler stopped")
	}()
}
