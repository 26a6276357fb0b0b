package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prakharsingh-74/meeting-summarizer/internal/config"
	"github.com/prakharsingh-74/meeting-summarizer/internal/email"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
	"github.com/prakharsingh-74/meeting-summarizer/internal/pipeline"
	"github.com/prakharsingh-74/meeting-summarizer/internal/server"
	"github.com/prakharsingh-74/meeting-summarizer/internal/summarizer"
	"github.com/prakharsingh-74/meeting-summarizer/internal/watcher"
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	serve := flag.Bool("serve", true, "start the HTTP API")
	watch := flag.Bool("watch", false, "watch the inbox directory for transcript files")
	addr := flag.String("addr", "", "http listen address (overrides server.addr)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Transcript Summarizer")
	log.Info(ctx, "========================================")
	log.Info(ctx, "LLM provider: %s (model %s)", cfg.LLM.Provider, cfg.LLM.Model)
	if cfg.SMTPConfigured() {
		log.Info(ctx, "Email delivery: live via %s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		log.Info(ctx, "Email delivery: demo mode (no SMTP relay configured)")
	}

	// Initialize dependencies
	client, err := summarizer.New(cfg.LLM, log)
	if err != nil {
		log.Error(ctx, "Failed to create summarizer: %v", err)
		os.Exit(1)
	}
	deliverer := email.New(cfg, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)

	var httpServer *http.Server
	if *serve {
		srv, err := server.New(client, deliverer, log)
		if err != nil {
			log.Error(ctx, "Failed to create server: %v", err)
			os.Exit(1)
		}
		listen := cfg.Server.Addr
		if *addr != "" {
			listen = *addr
		}
		httpServer = &http.Server{Addr: listen, Handler: srv.Routes()}

		go func() {
			log.Info(ctx, "HTTP API listening on %s", listen)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- err
			}
		}()
	}

	var w watcher.Watcher
	if *watch {
		if err := ensureDirectories(cfg); err != nil {
			log.Error(ctx, "Failed to create directories: %v", err)
			os.Exit(1)
		}

		pipe := pipeline.New(cfg, client, log)
		w, err = watcher.New(cfg.Paths.Inbox, pipe.Process, log, cfg.Performance.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && err != context.Canceled {
				errChan <- err
			}
		}()

		log.Info(ctx, "Monitoring inbox: %s", cfg.Paths.Inbox)
		log.Info(ctx, "Output: %s", cfg.Paths.Output)
	}

	if !*serve && !*watch {
		fmt.Fprintln(os.Stderr, "nothing to do: pass --serve and/or --watch")
		os.Exit(1)
	}

	log.Info(ctx, "Press Ctrl+C to stop")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn(ctx, "HTTP shutdown: %v", err)
		}
	}

	log.Info(ctx, "Summarizer stopped")
}

// ensureDirectories creates the watch-mode directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
