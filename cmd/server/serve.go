package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"group-manager/internal/app"
	"group-manager/internal/config"
	internaldb "group-manager/internal/db"
)

// serve opens the store, wires the application and runs the HTTP server and
// the audit pruner until SIGINT/SIGTERM.
func serve(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// writeDB: single-connection pool for serialized writes (WAL + txlock=immediate).
	// readDB:  4-connection pool for concurrent reads.
	pools, err := internaldb.OpenPools(cfg.MetaDBPath, 4)
	if err != nil {
		return fmt.Errorf("open group store: %w", err)
	}
	defer pools.Close() //nolint:errcheck

	if err := internaldb.RunMigrations(ctx, pools.Write); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	application, err := app.New(ctx, app.Deps{
		Cfg:     cfg,
		WriteDB: pools.Write,
		ReadDB:  pools.Read,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.NewRouter(application, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP API listening", "addr", cfg.ListenAddr)
		logger.Info(fmt.Sprintf("Try: curl -H 'Authorization: Bearer <jwt>' http://%s/v1/admins/1/groups",
			curlHostForListenAddr(cfg.ListenAddr)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return application.Pruner.Run(gctx)
	})

	return g.Wait()
}

// curlHostForListenAddr turns a listen address into a host:port usable in
// a curl hint, mapping wildcard and empty hosts to localhost.
func curlHostForListenAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
