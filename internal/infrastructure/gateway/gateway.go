// Package gateway implements the single outbound channel to the ParkEase
// backend. Every request passes through here: the credential token is
// attached before dispatch, all failures are normalized into one error shape,
// and a 401 clears the persisted session. The gateway never retries; retry
// behaviour belongs to callers (the pollers retry by virtue of their
// interval, not through this layer).
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
	"github.com/parkease/parking-console/internal/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRate    = 20 // requests per second
	defaultBurst   = 40
)

// Options configures a Gateway.
type Options struct {
	// BaseURL is the backend root, e.g. http://localhost:8080.
	BaseURL string
	// Client overrides the HTTP client. Defaults to a 10-second timeout.
	Client *http.Client
	// Store supplies the credential token and is cleared on 401.
	Store ports.SessionStore
	// CurrentRoute reports where the user currently is; used to suppress the
	// 401 redirect signal when already on the login route.
	CurrentRoute func() domain.Route
	// OnForcedLogout receives the redirect signal after a 401 clears the
	// session. Never invoked while on the login route.
	OnForcedLogout func(domain.Route)
	// RequestsPerSecond caps outbound request volume. Defaults to 20.
	RequestsPerSecond float64
	Logger            zerolog.Logger
}

// Gateway is the sole HTTP transport to the backend.
type Gateway struct {
	base           string
	client         *http.Client
	store          ports.SessionStore
	limiter        *rate.Limiter
	currentRoute   func() domain.Route
	onForcedLogout func(domain.Route)
	logger         zerolog.Logger
}

func New(opts Options) *Gateway {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRate
	}
	return &Gateway{
		base:           strings.TrimRight(opts.BaseURL, "/"),
		client:         client,
		store:          opts.Store,
		limiter:        rate.NewLimiter(rate.Limit(rps), defaultBurst),
		currentRoute:   opts.CurrentRoute,
		onForcedLogout: opts.OnForcedLogout,
		logger:         opts.Logger,
	}
}

func (g *Gateway) get(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, nil, out)
}

func (g *Gateway) post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

func (g *Gateway) put(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPut, path, body, out)
}

func (g *Gateway) delete(ctx context.Context, path string) error {
	return g.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs one request. Token attachment always happens before dispatch,
// even for login and register where no token exists yet (a no-op there).
func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	g.attachToken(ctx, req)

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, "unreachable").Inc()
		g.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend not reachable")
		return domain.NewUnreachableError()
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, "unreachable").Inc()
		return domain.NewUnreachableError()
	}

	metrics.GatewayRequestsTotal.WithLabelValues(method, statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized {
			g.forceLogout(ctx)
		}
		apiErr := domain.NewStatusError(resp.StatusCode, extractMessage(data))
		g.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("message", apiErr.Message).Msg("backend rejected request")
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// attachToken sets the Authorization header when a token is persisted.
func (g *Gateway) attachToken(ctx context.Context, req *http.Request) {
	session, err := g.store.Load(ctx)
	if err != nil || !session.Authenticated() {
		return
	}
	req.Header.Set("Authorization", "Bearer "+session.Token)
}

// forceLogout clears the persisted session after a 401 and signals a redirect
// to the login route, unless the user is already there (the login call itself
// returning 401 must not cause a redirect loop).
func (g *Gateway) forceLogout(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.logger.Error().Err(err).Msg("failed to clear session after 401")
	}
	metrics.ForcedLogoutsTotal.Inc()
	g.logger.Info().Msg("session cleared after 401")

	if g.currentRoute != nil && g.currentRoute() == domain.RouteLogin {
		return
	}
	if g.onForcedLogout != nil {
		g.onForcedLogout(domain.RouteLogin)
	}
}

// extractMessage pulls the backend-supplied message out of an error body,
// falling back to a generic one. Raw bodies are never surfaced.
func extractMessage(data []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return ""
}

func statusClass(code int) string {
	switch {
	case code < 400:
		return "2xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
