// Package server assembles the application instance: the router, its
// middleware chain, the CORS policy and the HTTP server that serves them.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/benvon/wifi-api/internal/config"
	"github.com/benvon/wifi-api/internal/handlers"
	"github.com/benvon/wifi-api/internal/metrics"
	"github.com/benvon/wifi-api/internal/middleware"
	"github.com/benvon/wifi-api/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

// Server is the application instance. It is built once per process and
// its routes and CORS policy do not change while it runs.
type Server struct {
	cfg        *config.Config
	log        *zap.Logger
	handler    http.Handler
	httpServer *http.Server
	metrics    *metrics.Metrics
}

type options struct {
	tracing   bool
	startedAt time.Time
}

// Option customizes New
type Option func(*options)

// WithTracing wraps every route in an OpenTelemetry span. The tracer
// provider must already be installed (see telemetry.InitTracer).
func WithTracing(enabled bool) Option {
	return func(o *options) { o.tracing = enabled }
}

// WithStartTime sets the time reported as process start by /healthz
func WithStartTime(t time.Time) Option {
	return func(o *options) { o.startedAt = t }
}

// New builds the application instance from cfg
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{startedAt: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{cfg: cfg, log: logger}
	if cfg.MetricsEnabled {
		s.metrics = metrics.New()
	}

	router, err := s.routes(o)
	if err != nil {
		return nil, err
	}

	// Outer chain, outermost last. It wraps the whole router so that 404,
	// 405 and preflight responses also carry CORS and security headers.
	var h http.Handler = router
	h = middleware.Options(h)
	h = middleware.ErrorHandler(logger)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)
	h = middleware.SecurityHeaders(cfg.EnableHSTS)(h)
	h = middleware.CORS(cfg.CORSPolicy(), logger, cfg.ServerDebugMode)(h)
	s.handler = h

	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	return s, nil
}

func (s *Server) routes(o options) (*mux.Router, error) {
	r := mux.NewRouter()
	r.NotFoundHandler = middleware.NotFoundHandler(s.log)
	r.MethodNotAllowedHandler = middleware.MethodNotAllowedHandler(s.log)

	// Route middleware, first registered runs first
	if o.tracing {
		r.Use(otelmux.Middleware(telemetry.ServiceName))
	}
	if s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
	}
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	healthChecker := handlers.NewHealthChecker(o.startedAt, s.cfg.ServerReload)

	r.HandleFunc("/", handlers.Root).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", handlers.VersionInfo).Methods(http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}

	openAPIHandler, err := handlers.NewOpenAPIHandler()
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	openAPIHandler.RegisterRoutes(r)

	return r, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Metrics returns the server's collectors, or nil when metrics are disabled
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// Listen opens the listening socket on the configured address
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until Shutdown is called. A clean
// shutdown returns nil.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("server_starting", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe opens the listener and serves until Shutdown
func (s *Server) ListenAndServe() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
