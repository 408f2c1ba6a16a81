// Package ops hosts the local listener watch mode exposes for liveness and
// Prometheus metrics. It serves operators on localhost; it is not part of
// the backend API surface.
package ops

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// NewServer builds the Echo instance with the ops routes registered.
func NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.Recover())

	e.GET("/health", liveness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

// liveness confirms the watch process is alive. The backend's reachability
// is deliberately not checked here: an unreachable backend is a state the
// pollers report, not a reason to kill the client.
func liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) {
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Str("addr", addr).Msg("ops listener failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = e.Shutdown(shutdownCtx)
}
