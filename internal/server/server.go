package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/haguru/shashin/internal/interfaces"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 30 * time.Second
	IdleTimeout  = 60 * time.Second
)

type Server struct {
	Port        string
	Host        string
	ServiceName string
	server      *http.Server
	router      *mux.Router
	middleware  []func(http.Handler) http.Handler
	Logger      interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(serviceName, host, port string, logger interfaces.Logger) interfaces.Server {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	return &Server{
		Host:        host,
		Port:        port,
		ServiceName: serviceName,
		router:      router,
		Logger:      logger,
	}
}

// AddRoute registers handler for the method and path template, e.g. /api/photos/{id}.
func (s *Server) AddRoute(method, route string, handler func(w http.ResponseWriter, r *http.Request)) error {
	if method == "" || !strings.HasPrefix(route, "/") {
		return fmt.Errorf("invalid route %s %q", method, route)
	}
	s.router.HandleFunc(route, handler).Methods(method)
	s.Logger.Info("Route added", "method", method, "route", route)
	return nil
}

// AddPrefix serves every GET/HEAD path under prefix, the prefix is stripped before handler runs.
func (s *Server) AddPrefix(prefix string, handler http.Handler) error {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return fmt.Errorf("prefix cannot be the root path")
	}
	s.router.PathPrefix(prefix + "/").
		Methods(http.MethodGet, http.MethodHead).
		Handler(http.StripPrefix(prefix, handler))
	s.Logger.Info("Prefix added", "prefix", prefix)
	return nil
}

// Use wraps the whole handler. The first middleware given is the outermost.
func (s *Server) Use(middleware ...func(http.Handler) http.Handler) {
	s.middleware = append(s.middleware, middleware...)
}

// UseOnRoutes adds router middleware, it sees the matched route.
func (s *Server) UseOnRoutes(middleware ...func(http.Handler) http.Handler) {
	for _, mw := range middleware {
		s.router.Use(mux.MiddlewareFunc(mw))
	}
}

// Handler returns the router wrapped in the middleware chain and otelhttp.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.router
	for i := len(s.middleware) - 1; i >= 0; i-- {
		handler = s.middleware[i](handler)
	}
	return otelhttp.NewHandler(handler, s.ServiceName)
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// A shutdown through Shutdown is not an error.
func (s *Server) ListenAndServe() error {
	s.server = &http.Server{
		Addr:              s.Host + ":" + s.Port,
		Handler:           s.Handler(),
		ReadTimeout:       ReadTimeout,
		ReadHeaderTimeout: ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.Logger.Info("Shutting down server")
	return s.server.Shutdown(ctx)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found", "The requested resource does not exist")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed", r.Method), "Method not allowed")
}

func writeError(w http.ResponseWriter, status int, cause, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "{\"error\":%q,\"message\":%q}\n", cause, message)
}
