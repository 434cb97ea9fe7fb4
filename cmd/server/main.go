package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/voice-bridge/internal/assets"
	"github.com/nguyentantai21042004/voice-bridge/internal/auth"
	"github.com/nguyentantai21042004/voice-bridge/internal/config"
	"github.com/nguyentantai21042004/voice-bridge/internal/export"
	"github.com/nguyentantai21042004/voice-bridge/internal/history"
	"github.com/nguyentantai21042004/voice-bridge/internal/language"
	"github.com/nguyentantai21042004/voice-bridge/internal/logger"
	"github.com/nguyentantai21042004/voice-bridge/internal/media"
	"github.com/nguyentantai21042004/voice-bridge/internal/pipeline"
	"github.com/nguyentantai21042004/voice-bridge/internal/progress"
	"github.com/nguyentantai21042004/voice-bridge/internal/server"
	"github.com/nguyentantai21042004/voice-bridge/internal/speech"
	"github.com/nguyentantai21042004/voice-bridge/internal/summarizer"
	"github.com/nguyentantai21042004/voice-bridge/internal/transcriber"
	"github.com/nguyentantai21042004/voice-bridge/internal/translator"
	"github.com/nguyentantai21042004/voice-bridge/internal/watcher"
	"github.com/nguyentantai21042004/voice-bridge/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Voice Bridge")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Listen address: %s", cfg.Server.Addr)
	log.Info(ctx, "Export format: %s", cfg.Export.Format)
	log.Info(ctx, "Max concurrent runs: %d", cfg.Pipeline.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Persistence
	authStore, err := auth.New(cfg.Paths.CredentialsFile)
	if err != nil {
		log.Error(ctx, "Failed to open credential store: %v", err)
		os.Exit(1)
	}
	sessions, err := auth.NewSessions(cfg.Server.SessionSecret, time.Duration(cfg.Server.SessionTTLMinutes)*time.Minute)
	if err != nil {
		log.Error(ctx, "Failed to initialize sessions: %v", err)
		os.Exit(1)
	}
	historyStore, err := history.New(cfg.Paths.HistoryDir)
	if err != nil {
		log.Error(ctx, "Failed to open history store: %v", err)
		os.Exit(1)
	}

	// Pipeline collaborators
	exec := executor.New()
	exporter, err := export.New(cfg.Export.Format)
	if err != nil {
		log.Error(ctx, "Failed to initialize exporter: %v", err)
		os.Exit(1)
	}
	registry := assets.New(time.Duration(cfg.Pipeline.AssetTTLMinutes)*time.Minute, log)
	hub := progress.NewHub()

	orch := pipeline.New(cfg, pipeline.Deps{
		Acquirer:    media.NewAcquirer(cfg, exec, log),
		Normalizer:  media.NewNormalizer(cfg, exec, log),
		Transcriber: transcriber.New(cfg, exec, log),
		Detector:    language.New(),
		Translator:  translator.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log),
		Synthesizer: speech.New(cfg, log),
		Summarizer:  summarizer.New(),
		Exporter:    exporter,
		History:     historyStore,
		Registry:    registry,
		Publisher:   hub,
	}, log)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Expired, undownloaded assets are reaped in the background.
	go registry.Run(ctx)

	errChan := make(chan error, 1)

	// Optional drop-folder watcher feeding the summarize chain
	if cfg.Watch.Enabled {
		w, err := watcher.New(cfg.Watch.Dir, func(ctx context.Context, filePath string) error {
			res, err := orch.SummarizeFile(ctx, pipeline.SummarizeFileRequest{
				Username:      cfg.Watch.User,
				AudioPath:     filePath,
				SentenceCount: cfg.Watch.SentenceCount,
			})
			if err != nil {
				return err
			}
			log.Info(ctx, "Dropped file summarized: %s -> %s", filepath.Base(filePath), res.DocumentPath)
			return nil
		}, log, cfg.Pipeline.MaxConcurrent)
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
		log.Info(ctx, "Watching drop folder: %s", cfg.Watch.Dir)
	}

	// HTTP server
	handler := server.New(authStore, sessions, historyStore, orch, registry, hub, log)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Voice Bridge is ready!")
	log.Info(ctx, "Open http://localhost%s in your browser", cfg.Server.Addr)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "HTTP shutdown: %v", err)
	}

	log.Info(ctx, "Voice Bridge stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		filepath.Dir(cfg.Paths.CredentialsFile),
		cfg.Paths.HistoryDir,
		cfg.Paths.Temp,
		cfg.Paths.Output,
	}
	if cfg.Watch.Enabled {
		dirs = append(dirs, cfg.Watch.Dir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
