// Package listen implements the rtkit beacon listener CLI entry point.
package listen

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

	"rtkit/internal/listener"
	"rtkit/internal/rpc"
	"rtkit/internal/store"
	"rtkit/pkg/config"
	"rtkit/pkg/logger"
)

// Run starts the HTTP beacon receiver and the history RPC socket.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.Init(cfg.Listener.LogLevel)

	if err := cfg.Listener.Validate(); err != nil {
		return err
	}

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Listener.DBPath)
	if err := os.MkdirAll(dbDir, 0700); err != nil {
		return fmt.Errorf("creating database directory %s: %w", dbDir, err)
	}

	// Ensure RPC socket directory exists
	sockDir := filepath.Dir(cfg.Listener.RPCSocket)
	if err := os.MkdirAll(sockDir, 0700); err != nil {
		return fmt.Errorf("creating socket directory %s: %w", sockDir, err)
	}

	db, err := store.New(cfg.Listener.DBPath, log)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	rpcListener, err := rpc.StartServer(cfg.Listener.RPCSocket, db, log)
	if err != nil {
		return fmt.Errorf("starting RPC server: %w", err)
	}
	defer func() {
		rpcListener.Close()
		os.Remove(cfg.Listener.RPCSocket)
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Listener.Port),
		Handler:           listener.NewRouter(db, cfg.Listener.Param, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", server.Addr).
		Str("db_path", cfg.Listener.DBPath).
		Str("param", cfg.Listener.Param).
		Msg("Beacon listener started")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listener error: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
