package interfaces

import (
	"context"
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	AddRoute(method, route string, handler func(w http.ResponseWriter, r *http.Request)) error
	// AddPrefix serves every path under prefix with handler, the prefix is stripped.
	AddPrefix(prefix string, handler http.Handler) error
	// Use wraps the whole handler, unmatched requests and preflights included.
	Use(middleware ...func(http.Handler) http.Handler)
	// UseOnRoutes runs middleware for matched routes only.
	UseOnRoutes(middleware ...func(http.Handler) http.Handler)
	Handler() http.Handler
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
