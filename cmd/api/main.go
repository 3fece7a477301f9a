// ABOUTME: Main entry point for the Commonplace API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"commonplace-api/api"
	"commonplace-api/api/handlers"
	"commonplace-api/core/enhance"
	"commonplace-api/core/interfaces"
	"commonplace-api/core/proposal"
	"commonplace-api/core/workers"
	"commonplace-api/infrastructure/logger/structured"
	"commonplace-api/infrastructure/storage/cached"
	"commonplace-api/pkg/config"
	"commonplace-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	logger := structured.NewLogger(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	flags := featureflags.NewEnvManagerWithDefaults("FEATURE_", defaultFlags)
	logger.Info("Starting Commonplace API", map[string]interface{}{
		"port":        cfg.Server.Port,
		"cache_type":  cfg.Cache.Type,
		"transformer": cfg.Transformer.Type,
		"flags":       flags.GetAllFlags(),
	})

	// Create cache
	cache, closeCache := newCache(cfg.Cache, logger)
	defer closeCache()

	// Create transformer
	ctx := context.Background()
	transformer, closeTransformer, err := newTransformer(ctx, cfg.Transformer, logger)
	if err != nil {
		logger.Error("Failed to create transformer", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Failed to create transformer: %v", err)
	}
	defer closeTransformer()

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:       cache,
		Logger:      logger,
		Transformer: transformer,
	}

	// Create services
	proposalService := proposal.NewProposalService(cached.NewProposalStorage(cache), logger)
	enhanceService := enhance.NewEnhancementService(deps, proposalService, enhance.Options{
		MaxContentBytes: cfg.Server.MaxContentBytes,
		CacheTTL:        cfg.Enhance.CacheTTL,
		ProposalTTL:     cfg.Enhance.ProposalTTL,
		Timeout:         cfg.Transformer.Timeout,
		Flags:           flags,
	})

	workerConfig := workers.DefaultWorkerConfig()
	workerConfig.MaxWorkers = cfg.Enhance.BatchWorkers
	worker := workers.NewEnhancementWorker(enhanceService, logger, workerConfig)
	if err := worker.Start(); err != nil {
		log.Fatalf("Failed to start worker pool: %v", err)
	}

	// Create API with middleware
	server := api.NewServer(api.APIConfig{
		Logger:     logger,
		Flags:      flags,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: cfg.Server.RateWindow,
	})
	defer server.Close()

	// Create and register handlers
	handlers.NewContentHandler(enhanceService).RegisterRoutes(server.API)
	handlers.NewEnhanceHandler(enhanceService, worker, flags).RegisterRoutes(server.API)
	handlers.NewProposalHandler(proposalService).RegisterRoutes(server.API)

	// Create HTTP server. Writes wait on the transformer, so the write
	// timeout covers one transformation plus margin.
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Transformer.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := worker.Stop(); err != nil {
		logger.Warn("Worker pool stop failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

func init() {
	// Print banner
	fmt.Println(`
   ___                                        _
  / __|___ _ __  _ __  ___ _ _  _ __| |__ _ __ ___
 | (__/ _ \ '  \| '  \/ _ \ ' \| '_ \ / _' / _/ -_)
  \___\___/_|_|_|_|_|_\___/_||_| .__/_\__,_\__\___|
                               |_|
	`)
}
