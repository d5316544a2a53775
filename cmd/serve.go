package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/mission-control/internal/adapters/httpapi"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func newServeCmd(loader *appLoader) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mission control JSON API",
		Args:  cobra.NoArgs,
		RunE: loader.run(func(cmd *cobra.Command, _ []string, app *app) error {
			addr := app.cfg.Listen
			if listen != "" {
				addr = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, app, addr)
		}),
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides the listen config key)")

	return cmd
}

func serve(ctx context.Context, app *app, addr string) error {
	if app.cfg.APIKey == "" {
		app.logger.Warn("api_key is not set; write endpoints will reject every request")
	}

	server := httpapi.NewServer(httpapi.Services{
		Ingest:    app.ingest,
		Dashboard: app.dashboard,
		Journal:   app.journal,
	}, app.cfg.APIKey, app.logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// The loop must be gone before the caller closes the database.
	loopCtx, stopLoop := context.WithCancel(ctx)
	loopDone := startCollectLoop(loopCtx, app, app.cfg.CollectInterval)
	defer func() {
		stopLoop()
		<-loopDone
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	app.logger.Info("http server listening", "addr", addr, "agents", app.roster.Len())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	app.logger.Info("http server stopped")
	return nil
}

// startCollectLoop pulls upstream sessions every interval until ctx is done.
// Failures are logged and the next tick tries again. The returned channel is
// closed once no collection is in flight. A non-positive interval disables
// the loop.
func startCollectLoop(ctx context.Context, app *app, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		app.logger.Info("background collection enabled", "interval", interval)
		for {
			select {
			case <-ctx.Done():
				app.logger.Info("background collection stopped")
				return
			case <-ticker.C:
				if _, err := app.ingest.Collect(ctx); err != nil && ctx.Err() == nil {
					app.logger.Warn("background collection failed", "err", err)
				}
			}
		}
	}()
	return done
}
