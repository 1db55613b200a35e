package main

import (
	"encoding/json"
	"net/http"

	"github.com/fbsfernando/bot-link-manager/internal/metrics"
	"github.com/fbsfernando/bot-link-manager/internal/service"
	"github.com/fbsfernando/bot-link-manager/internal/tracing"

	"github.com/sirupsen/logrus"
)

// handleMetrics serves the in-process metrics registry as JSON
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot := metrics.GetAllMetrics()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(snapshot); err != nil {
		s.logger.WithFields(logrus.Fields{
			service.LogFieldRequestID: tracing.GetRequestID(r.Context()),
			service.LogFieldEndpoint:  "/metrics",
		}).WithError(err).Error("Failed to encode metrics response")

		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// handleHealth is the unauthenticated liveness probe
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Version: Version})
}
