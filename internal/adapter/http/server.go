package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/eventhub/eventhub/infrastructure/http/middleware"
	"github.com/eventhub/eventhub/infrastructure/http/response"
	"github.com/eventhub/eventhub/infrastructure/service/logger"
)

// ServerConfig represents server configuration
type ServerConfig struct {
	Addr         string
	APIPrefix    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORS         *middleware.CORSConfig
}

// Dependencies are the collaborators mounted by the server. Nil optional
// members disable their surface.
type Dependencies struct {
	Routes    []RouteRegistrar
	RateLimit *middleware.RateLimitMiddleware
	Metrics   *middleware.HTTPMetrics
	Logger    logger.Logger
}

// Server represents the HTTP server
type Server struct {
	server *http.Server
	logger logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(config ServerConfig, deps Dependencies) *Server {
	return &Server{
		logger: deps.Logger,
		server: &http.Server{
			Addr:         config.Addr,
			Handler:      NewHandler(config, deps),
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
}

// NewHandler builds the router and wraps it in the middleware chain:
// recovery, correlation id, CORS, rate limit.
func NewHandler(config ServerConfig, deps Dependencies) http.Handler {
	router := mux.NewRouter()
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
		router.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	api := router
	if config.APIPrefix != "" {
		api = router.PathPrefix(config.APIPrefix).Subrouter()
	}
	for _, r := range deps.Routes {
		r.RegisterRoutes(api)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	var handler http.Handler = router
	if deps.RateLimit != nil {
		handler = deps.RateLimit.RateLimit(handler)
	}
	if config.CORS != nil {
		handler = middleware.CORSMiddleware(*config.CORS)(handler)
	}
	handler = middleware.CorrelationIDMiddleware(handler)
	return middleware.Recovery(deps.Logger)(handler)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
