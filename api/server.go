// Package api exposes the song service over HTTP.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jacentio/songbook/songs"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host           string
	Port           int
	CORSOrigins    []string
	RequestTimeout time.Duration
	Version        string
}

// Server is the HTTP server fronting the song service.
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *mux.Router
	handlers   *Handlers
}

// NewServer wires routes, middleware, and timeouts around the service.
// A nil logger falls back to slog.Default().
func NewServer(config ServerConfig, service *songs.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := mux.NewRouter()
	h := NewHandlers(service, logger, config.Version)

	server := &Server{
		config:   config,
		router:   router,
		handlers: h,
	}

	server.setupRoutes()

	// CORS sits outermost so even recovered panics carry the headers.
	cors := handlers.CORS(
		handlers.AllowedOrigins(config.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	chain := cors(recoveryMiddleware(logger, timeoutMiddleware(config.RequestTimeout, router)))

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/", s.handlers.Root).Methods("GET")
	s.router.HandleFunc("/health", s.handlers.Health).Methods("GET")

	s.router.HandleFunc("/songs", s.handlers.ListSongs).Methods("GET")
	s.router.HandleFunc("/songs", s.handlers.CreateSong).Methods("POST")
	s.router.HandleFunc("/songs/{id}", s.handlers.GetSong).Methods("GET")
	s.router.HandleFunc("/songs/{id}", s.handlers.UpdateSong).Methods("PUT")
	s.router.HandleFunc("/songs/{id}", s.handlers.DeleteSong).Methods("DELETE")
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, draining in-flight
// requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server binds to.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Handler returns the fully wrapped handler chain. Exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// timeoutMiddleware bounds each request's context so store calls cannot
// hang past the configured deadline.
func timeoutMiddleware(d time.Duration, next http.Handler) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// recoveryMiddleware recovers from handler panics and returns a JSON
// 500 instead of tearing down the connection.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic while handling request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
