package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fbsfernando/bot-link-manager/internal/middleware"
	"github.com/fbsfernando/bot-link-manager/internal/privacy"
	"github.com/fbsfernando/bot-link-manager/internal/service"
	"github.com/fbsfernando/bot-link-manager/internal/tracing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
)

type sessionStatusEvent struct {
	Type     string      `json:"type"`
	Sessions interface{} `json:"sessions"`
	Total    int         `json:"total"`
}

// handleSessionStatusStream upgrades to a WebSocket and pushes the caller's
// session list whenever it changes, polling the gateway at the configured
// interval. The initial snapshot is sent immediately after the upgrade.
func (s *Server) handleSessionStatusStream(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.wsOriginPatterns,
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			service.LogFieldRequestID: tracing.GetRequestID(r.Context()),
			service.LogFieldUserEmail: privacy.MaskEmail(claims.Email),
		}).WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream terminated")

	// CloseRead gives us a context that ends when the client goes away.
	ctx := conn.CloseRead(r.Context())

	s.logger.WithFields(logrus.Fields{
		service.LogFieldUserEmail: privacy.MaskEmail(claims.Email),
	}).Debug("Session status stream opened")

	ticker := time.NewTicker(s.statusPollInterval)
	defer ticker.Stop()

	var lastPayload []byte
	for {
		sessions, err := s.sessions.List(ctx, claims)
		if err != nil {
			if ctx.Err() != nil {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			s.logger.WithFields(logrus.Fields{
				service.LogFieldUserEmail: privacy.MaskEmail(claims.Email),
			}).WithError(err).Warn("Session status poll failed")
		} else {
			event := sessionStatusEvent{
				Type:     "sessions",
				Sessions: sessions,
				Total:    len(sessions),
			}
			payload, marshalErr := json.Marshal(event)
			if marshalErr == nil && !bytes.Equal(payload, lastPayload) {
				if err := wsjson.Write(ctx, conn, event); err != nil {
					conn.Close(websocket.StatusNormalClosure, "")
					return
				}
				lastPayload = payload
			}
		}

		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}
