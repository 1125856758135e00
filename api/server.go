package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/project-catalog-backend/config"
	"github.com/rpupo63/project-catalog-backend/database"
	"github.com/rs/zerolog/log"
)

const defaultAcceptedOrigin = "http://localhost:5173"

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database, opts ...Option) (Server, error) {
	startupTime := time.Now()

	rt := newRouterSettings(opts...)
	handler, err := newRouter(database, rt)
	if err != nil {
		return Server{}, err
	}

	port := config.GetString(rt.config, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	readTimeout := time.Duration(config.GetInt(rt.config, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(rt.config, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(rt.config, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

// NewHandler builds the complete HTTP handler without a listening server
func NewHandler(database database.Database, opts ...Option) (http.Handler, error) {
	return newRouter(database, newRouterSettings(opts...))
}

type Option func(*router)

type router struct {
	config        map[string]string
	adminPassword string
	development   bool
	tokens        tokenIssuer
	images        ImageStore
	maxImageBytes int64
}

func WithConfig(c map[string]string) Option {
	return func(r *router) {
		r.config = c
	}
}

// WithAdminPassword overrides ADMIN_PASSWORD, e.g. with a value resolved from SSM
func WithAdminPassword(password string) Option {
	return func(r *router) {
		r.adminPassword = password
	}
}

func WithImageStore(images ImageStore) Option {
	return func(r *router) {
		r.images = images
	}
}

func newRouterSettings(opts ...Option) router {
	var rt router
	for _, opt := range opts {
		opt(&rt)
	}
	if rt.config == nil {
		rt.config = config.New()
	}
	if rt.adminPassword == "" {
		rt.adminPassword = config.GetString(rt.config, "ADMIN_PASSWORD", "")
	}
	rt.development = config.IsDevelopment(rt.config)
	rt.tokens = newTokenIssuer(config.GetString(rt.config, "ADMIN_TOKEN_SECRET", rt.adminPassword))
	rt.maxImageBytes = int64(config.GetInt(rt.config, "IMAGE_MAX_BYTES", defaultMaxImageBytes))
	return rt
}

func newRouter(database database.Database, rt router) (*chi.Mux, error) {
	development := rt.development

	loginLimit, err := newRateLimiter(config.GetString(rt.config, "LOGIN_RATE_LIMIT", "10-M"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_LIMIT: %w", err)
	}

	requireAdmin := func(next http.Handler) http.Handler { return next }
	if config.GetBool(rt.config, "REQUIRE_ADMIN_TOKEN", false) {
		requireAdmin = newAuthMiddleware(rt.tokens).authenticate
	}

	handlers := initializeHandlers(database, rt)

	chiRouter := chi.NewRouter()
	chiRouter.Use(chimiddleware.RequestID, chimiddleware.RealIP)
	chiRouter.Use(LogInternalServerErrors(development))
	chiRouter.Use(ColoredHTTPLoggingMiddleware)

	metricsEnabled := config.GetBool(rt.config, "METRICS_ENABLED", false)
	if metricsEnabled {
		chiRouter.Use(PrometheusMiddleware)
	}

	chiRouter.Use(secureHeaders(development))

	acceptedOrigins := config.GetList(rt.config, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{defaultAcceptedOrigin}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	if metricsEnabled {
		chiRouter.Handle("/metrics", promhttp.Handler())
	}
	setupRoutes(chiRouter, handlers, requireAdmin, loginLimit)
	chiRouter.Route("/api", func(r chi.Router) {
		setupRoutes(r, handlers, requireAdmin, loginLimit)
	})

	log.Info().
		Bool("development", development).
		Strs("acceptedOrigins", acceptedOrigins).
		Bool("adminPasswordSet", rt.adminPassword != "").
		Bool("imageUploads", rt.images != nil && rt.images.Enabled()).
		Msg("router initialized")

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

// Uptime is the time since the server was built
func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", s.Uptime()).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
