package main

import (
	"encoding/json"
	"net/http"

	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/internal/httputil"
	"github.com/fbsfernando/bot-link-manager/internal/middleware"
	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"

	"github.com/gorilla/mux"
)

type appResponse struct {
	Success bool       `json:"success"`
	App     *types.App `json:"app"`
}

type appDeleteResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result,omitempty"`
}

type localesResponse struct {
	Success bool           `json:"success"`
	Locales []types.Locale `json:"locales"`
}

func (s *Server) handleCreateApp(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var app types.App
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		httputil.WriteError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	created, err := s.apps.Create(r.Context(), claims, &app)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, appResponse{Success: true, App: created})
}

func (s *Server) handleUpdateApp(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id := mux.Vars(r)["id"]

	var app types.App
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		httputil.WriteError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	updated, err := s.apps.Update(r.Context(), claims, id, &app)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, appResponse{Success: true, App: updated})
}

func (s *Server) handleDeleteApp(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	id := mux.Vars(r)["id"]

	// The gateway's app records carry no owner; the caller names the
	// session so ownership can be checked against its metadata.
	var body struct {
		Session string `json:"session"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteError(w, errors.NewValidationError("Invalid request body"))
		return
	}

	result, err := s.apps.Delete(r.Context(), claims, id, body.Session)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, appDeleteResponse{Success: true, Result: result})
}

func (s *Server) handleChatwootLocales(w http.ResponseWriter, r *http.Request) {
	locales, err := s.apps.ChatwootLocales(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, localesResponse{Success: true, Locales: locales})
}
