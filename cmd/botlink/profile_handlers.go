package main

import (
	"net/http"

	"github.com/fbsfernando/bot-link-manager/internal/httputil"
	"github.com/fbsfernando/bot-link-manager/internal/middleware"
	"github.com/fbsfernando/bot-link-manager/internal/models"
)

type profileResponse struct {
	Success bool            `json:"success"`
	Profile *models.Profile `json:"profile"`
}

type apiKeyResponse struct {
	APIKey string `json:"api_key"`
}

type connectionListResponse struct {
	Connections []models.Connection `json:"connections"`
	Total       int                 `json:"total"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	profile, err := s.profiles.Get(r.Context(), claims)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profileResponse{Success: true, Profile: profile})
}

func (s *Server) handleRegenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	apiKey, err := s.profiles.RegenerateAPIKey(r.Context(), claims)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, apiKeyResponse{APIKey: apiKey})
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	connections, err := s.profiles.Connections(r.Context(), claims)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if connections == nil {
		connections = []models.Connection{}
	}

	httputil.WriteJSON(w, http.StatusOK, connectionListResponse{
		Connections: connections,
		Total:       len(connections),
	})
}
