package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fbsfernando/bot-link-manager/internal/auth"
	"github.com/fbsfernando/bot-link-manager/internal/middleware"
	"github.com/fbsfernando/bot-link-manager/internal/models"
	"github.com/fbsfernando/bot-link-manager/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server wires the HTTP surface: router, middleware chain and handlers.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
	sessions   *service.SessionService
	apps       *service.AppService
	profiles   *service.ProfileService

	statusPollInterval time.Duration
	wsOriginPatterns   []string
}

func NewServer(
	cfg *models.Config,
	logger *logrus.Logger,
	verifier *auth.Verifier,
	sessions *service.SessionService,
	apps *service.AppService,
	profiles *service.ProfileService,
) *Server {
	s := &Server{
		logger:             logger,
		sessions:           sessions,
		apps:               apps,
		profiles:           profiles,
		statusPollInterval: time.Duration(cfg.Server.StatusPollIntervalSec) * time.Second,
		wsOriginPatterns:   cfg.Server.AllowedOrigins,
	}

	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(verifier, logger))

	api.HandleFunc("/sessions", s.handleListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{name}", s.handleUpdateSession).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{name}", s.handleDeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{name}/start", s.handleStartSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{name}/restart", s.handleRestartSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{name}/stop", s.handleStopSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{name}/logout", s.handleLogoutSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{name}/qr", s.handleSessionQR).Methods(http.MethodGet)

	api.HandleFunc("/apps", s.handleCreateApp).Methods(http.MethodPost)
	api.HandleFunc("/apps/chatwoot/locales", s.handleChatwootLocales).Methods(http.MethodGet)
	api.HandleFunc("/apps/{id}", s.handleUpdateApp).Methods(http.MethodPut)
	api.HandleFunc("/apps/{id}", s.handleDeleteApp).Methods(http.MethodDelete)

	api.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile/api-key", s.handleRegenerateAPIKey).Methods(http.MethodPost)
	api.HandleFunc("/connections", s.handleListConnections).Methods(http.MethodGet)

	api.HandleFunc("/ws/sessions", s.handleSessionStatusStream).Methods(http.MethodGet)

	// CORS sits outside the router so preflight requests are answered even
	// for routes that only register non-OPTIONS methods.
	handler := middleware.Observability(logger)(middleware.CORS(cfg.Server.AllowedOrigins)(router))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
