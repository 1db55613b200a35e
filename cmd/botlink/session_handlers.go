package main

import (
	"encoding/json"
	"net/http"

	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/internal/httputil"
	"github.com/fbsfernando/bot-link-manager/internal/middleware"
	"github.com/fbsfernando/bot-link-manager/internal/service"
	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"

	"github.com/gorilla/mux"
)

type sessionResponse struct {
	Success bool           `json:"success"`
	Session *types.Session `json:"session"`
	Message string         `json:"message,omitempty"`
}

type sessionListResponse struct {
	Sessions []types.Session `json:"sessions"`
	Total    int             `json:"total"`
}

type deleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type qrResponse struct {
	QRData *service.QRCode `json:"qrData"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	session, err := s.sessions.Create(r.Context(), claims, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, sessionResponse{Success: true, Session: session})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	sessions, err := s.sessions.List(r.Context(), claims)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sessionListResponse{Sessions: sessions, Total: len(sessions)})
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	var req types.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	session, err := s.sessions.Update(r.Context(), claims, name, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Session: session,
		Message: "Session updated successfully",
	})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	session, err := s.sessions.Start(r.Context(), claims, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sessionResponse{Success: true, Session: session})
}

func (s *Server) handleRestartSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	session, err := s.sessions.Restart(r.Context(), claims, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, struct {
		Session *types.Session `json:"session"`
	}{Session: session})
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	session, err := s.sessions.Stop(r.Context(), claims, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sessionResponse{Success: true, Session: session})
}

func (s *Server) handleLogoutSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	session, err := s.sessions.Logout(r.Context(), claims, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, sessionResponse{
		Success: true,
		Session: session,
		Message: "Session logged out successfully",
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	if err := s.sessions.Delete(r.Context(), claims, name); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, deleteResponse{
		Success: true,
		Message: "Session deleted successfully",
	})
}

func (s *Server) handleSessionQR(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	name := mux.Vars(r)["name"]

	qr, err := s.sessions.QR(r.Context(), claims, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, qrResponse{QRData: qr})
}
