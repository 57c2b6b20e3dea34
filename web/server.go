package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dasdy/nuhxboard/board"
	"github.com/dasdy/nuhxboard/logging"
	"github.com/dasdy/nuhxboard/web/routes"
)

var logCtx = logging.PackageCtx("web")

const shutdownTimeout = 5 * time.Second

func disableCacheInDevMode(dev bool, next http.Handler) http.Handler {
	if !dev {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func BuildServer(b *board.Board, dev bool) *http.ServeMux {
	handler := routes.NewServerHandler(b)

	mux := http.NewServeMux()
	mux.Handle("GET /frame.svg", disableCacheInDevMode(dev, http.HandlerFunc(handler.FrameHandle)))
	mux.Handle("GET /state", http.HandlerFunc(handler.StateHandle))
	mux.Handle("GET /ws", http.HandlerFunc(handler.LiveHandle))
	mux.Handle("GET /{$}", disableCacheInDevMode(dev, http.HandlerFunc(handler.IndexHandle)))

	return mux
}

// StartServer serves the board until ctx is done, then shuts the listener down gracefully.
func StartServer(ctx context.Context, port int, b *board.Board, dev bool) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           BuildServer(b, dev),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.InfoContext(logCtx, "Running interface", "port", port)

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("could not run server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut server down: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.InfoContext(logCtx, "Server stopped")

	return nil
}
