package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sqlgate/internal/config"
	"sqlgate/internal/gate"
	"sqlgate/internal/hub"
	"sqlgate/internal/storage"
	"sqlgate/internal/storage/memstore"
	"sqlgate/internal/storage/pgstore"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("sqlgate stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	addr := flag.String("addr", cfg.Addr, "listen address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("sqlgate starting", "addr", *addr, "hub", cfg.HubURL)

	// History goes to Postgres when configured, memory otherwise.
	var store storage.Store
	if cfg.DatabaseURL != "" {
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		store = pg
		logger.Info("using postgres history store")
	} else {
		store = memstore.New()
		logger.Info("using in-memory history store")
	}

	g, err := gate.New(store, hub.New(cfg.HubURL, cfg.HubToken, cfg.HubTimeout), gate.Options{
		CacheSize: cfg.CacheSize,
		Chain:     cfg.Chain,
		Model:     cfg.Model,
	})
	if err != nil {
		return err
	}
	if err := g.Start(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newServer(g, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("sqlgate shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
