// Package api provides the HTTP control surface for WallPanel Core.
//
// It exposes the device's status tree as read endpoints, device actions
// as write endpoints, two binary capture endpoints, and a WebSocket
// status stream. Every JSON response uses the envelope
// {success, data|error, timestamp}.
//
// The server follows the same lifecycle pattern as the other components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nerrad567/wallpanel-core/internal/command"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/config"
	"github.com/nerrad567/wallpanel-core/internal/infrastructure/logging"
	"github.com/nerrad567/wallpanel-core/internal/status"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight
// requests to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Sentinel errors for server lifecycle operations.
var (
	// ErrAlreadyRunning indicates Start was called on a running server.
	ErrAlreadyRunning = errors.New("api: server already running")

	// ErrUnavailable indicates an optional capture capability is absent.
	// Capturer implementations return it for missing hardware.
	ErrUnavailable = errors.New("api: capability unavailable")
)

// Capturer supplies the two binary endpoints. Implementations live with
// the display/camera layer; nil disables both endpoints (503).
type Capturer interface {
	// Screenshot returns the current screen contents and its content type.
	Screenshot(ctx context.Context) (data []byte, contentType string, err error)

	// CameraPhoto captures a frame from the named camera at the given
	// JPEG quality (1-100).
	CameraPhoto(ctx context.Context, camera string, quality int) (data []byte, contentType string, err error)

	// CameraList returns the available camera names.
	CameraList(ctx context.Context) ([]string, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config       config.HTTPConfig
	WS           config.WebSocketConfig
	AllowControl bool
	Logger       *logging.Logger
	Provider     status.Provider
	Handler      command.Handler
	Capturer     Capturer // optional; nil yields 503 on capture routes
	Version      string
}

// Server is the HTTP API server.
//
// It manages the listener, routes, middleware, and the WebSocket hub.
// Created with New(), started with Start(), stopped with Close().
type Server struct {
	cfg      config.HTTPConfig
	wsCfg    config.WebSocketConfig
	allowCtl bool
	logger   *logging.Logger
	provider status.Provider
	handler  command.Handler
	capturer Capturer
	version  string

	server *http.Server
	hub    *hub
	cancel context.CancelFunc

	mu      sync.Mutex
	running bool
}

// New creates an API server from its dependencies.
//
// The server is not listening until Start() is called.
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("api: logger is required")
	}
	if deps.Handler == nil {
		return nil, fmt.Errorf("api: command handler is required")
	}

	return &Server{
		cfg:      deps.Config,
		wsCfg:    deps.WS,
		allowCtl: deps.AllowControl,
		logger:   deps.Logger,
		provider: status.Safe(deps.Provider, deps.Logger),
		handler:  deps.Handler,
		capturer: deps.Capturer,
		version:  deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// The listener runs in a background goroutine; listen errors are logged,
// never fatal to the process. A second Start on a running server returns
// ErrAlreadyRunning.
//
// Parameters:
//   - ctx: Context bounding the background broadcast goroutine
//
// Returns:
//   - error: ErrAlreadyRunning, or nil
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = newHub(s.logger)
	go s.broadcastLoop(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.ReadTimeout(),
		ReadHeaderTimeout: s.cfg.ReadTimeout(),
		WriteTimeout:      s.cfg.WriteTimeout(),
		IdleTimeout:       s.cfg.IdleTimeout(),
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests
// up to a fixed timeout. Safe to call on a stopped server.
func (s *Server) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	if s.hub != nil {
		s.hub.closeAll()
	}

	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}

	s.logger.Info("API server stopped")
	return nil
}

// HealthCheck reports whether the server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return fmt.Errorf("api health check: server not running")
	}
	return nil
}

// PushStatus broadcasts a fresh snapshot to all WebSocket clients,
// independent of the periodic broadcast.
func (s *Server) PushStatus() {
	if s.hub == nil {
		return
	}
	s.hub.broadcastSnapshot(s.provider.Snapshot())
}

// broadcastLoop pushes the status snapshot to WebSocket clients on the
// configured interval.
func (s *Server) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(s.wsCfg.BroadcastInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.hub.broadcastSnapshot(s.provider.Snapshot())
		}
	}
}
