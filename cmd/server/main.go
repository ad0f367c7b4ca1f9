package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hstree/hstree/internal/api"
	"github.com/hstree/hstree/internal/config"
	"github.com/hstree/hstree/internal/pipeline"
	"github.com/hstree/hstree/internal/store"
	"github.com/hstree/hstree/internal/watch"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	fieldMap, err := config.LoadFieldMap(cfg.FieldMapPath)
	if err != nil {
		log.Error("invalid field map", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Open(cfg.DBPath, cfg.ArtifactDir)
	if err != nil {
		log.Error("open store failed", "error", err)
		os.Exit(1)
	}

	orch := pipeline.NewOrchestrator(cfg, fieldMap, st, log)
	orch.Start(ctx)

	if cfg.WatchDir != "" {
		watcher := watch.New(cfg.WatchDir, orch, log)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Error("watcher stopped", "error", err)
			}
		}()
	}

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()
		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		st.Close()
	}()

	log.Info("starting hstree", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
