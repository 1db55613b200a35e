package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fbsfernando/bot-link-manager/internal/auth"
	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/internal/validation"
	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"

	"github.com/sirupsen/logrus"
)

// AppService manages integration apps bound to sessions. Every mutation
// is gated on ownership of the target session.
type AppService struct {
	gateway  types.GatewayClient
	sessions *SessionService
	logger   *logrus.Logger
}

func NewAppService(gateway types.GatewayClient, sessions *SessionService, logger *logrus.Logger) *AppService {
	return &AppService{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
	}
}

func validateApp(app *types.App) error {
	if app.Session == "" {
		return errors.NewValidationError("Session name is required")
	}
	if app.App == "" {
		return errors.NewValidationError("App type is required")
	}
	if app.Config == nil {
		return errors.NewValidationError("App config is required")
	}
	if app.App == "chatwoot" {
		return validateChatwootConfig(app.Config)
	}
	return nil
}

// validateChatwootConfig enforces the chatwoot field contract. This
// service is the only validation boundary in front of the gateway, which
// accepts whatever it is given.
func validateChatwootConfig(config map[string]interface{}) error {
	required := []struct{ key, label string }{
		{"url", "URL"},
		{"accountId", "Account ID"},
		{"accountToken", "Account Token"},
		{"inboxId", "Inbox ID"},
		{"inboxIdentifier", "Inbox Identifier"},
		{"locale", "Locale"},
	}
	for _, field := range required {
		value, ok := config[field.key]
		if !ok || value == nil {
			return errors.NewValidationError(fmt.Sprintf("%s is required", field.label))
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return errors.NewValidationError(fmt.Sprintf("%s is required", field.label))
		}
	}

	numeric := []struct{ key, label string }{
		{"accountId", "Account ID"},
		{"inboxId", "Inbox ID"},
	}
	for _, field := range numeric {
		parsed, err := numericConfigValue(config[field.key])
		if err != nil || parsed < 0 {
			return errors.NewValidationError(fmt.Sprintf("%s must be a non-negative number", field.label))
		}
	}
	return nil
}

// numericConfigValue accepts the shapes a decoded JSON config can carry a
// number in: a JSON number (float64), or a numeric string as the original
// dashboard forms submitted.
func numericConfigValue(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("value %v is not numeric", value)
	}
}

// Create binds an integration app to one of the caller's sessions. A
// missing id defaults to "<session>-<app>"; either way the id is
// normalized to the gateway's allowed charset.
func (s *AppService) Create(ctx context.Context, claims *auth.Claims, app *types.App) (*types.App, error) {
	if err := validateApp(app); err != nil {
		return nil, err
	}
	if _, err := s.sessions.verifyOwnership(ctx, claims, app.Session); err != nil {
		return nil, err
	}

	if app.ID == "" {
		app.ID = fmt.Sprintf("%s-%s", app.Session, app.App)
	}
	app.ID = validation.NormalizeAppID(app.ID)

	created, err := s.gateway.CreateApp(ctx, app)
	if err != nil {
		return nil, mapGatewayError(err, "", "")
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldAppID:   created.ID,
		LogFieldSession: app.Session,
		LogFieldUserID:  claims.UserID,
	}).Info("App created")
	return created, nil
}

// Update replaces an existing app's configuration after the same
// validation and ownership gate as creation.
func (s *AppService) Update(ctx context.Context, claims *auth.Claims, id string, app *types.App) (*types.App, error) {
	if id == "" {
		return nil, errors.NewValidationError("App id is required")
	}
	if err := validateApp(app); err != nil {
		return nil, err
	}
	if _, err := s.sessions.verifyOwnership(ctx, claims, app.Session); err != nil {
		return nil, err
	}

	app.ID = validation.NormalizeAppID(id)

	updated, err := s.gateway.UpdateApp(ctx, app.ID, app)
	if err != nil {
		return nil, mapGatewayError(err, "App", app.ID)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldAppID:  app.ID,
		LogFieldUserID: claims.UserID,
	}).Info("App updated")
	return updated, nil
}

// Delete removes an app. The session name comes from the request body
// since the gateway's app listing carries no ownership information of
// its own. The gateway's response body, when present, is returned to
// the caller as parsed JSON.
func (s *AppService) Delete(ctx context.Context, claims *auth.Claims, id, session string) (json.RawMessage, error) {
	if id == "" {
		return nil, errors.NewValidationError("App id is required")
	}
	if session == "" {
		return nil, errors.NewValidationError("Session name is required")
	}
	if _, err := s.sessions.verifyOwnership(ctx, claims, session); err != nil {
		return nil, err
	}

	result, err := s.gateway.DeleteApp(ctx, validation.NormalizeAppID(id))
	if err != nil {
		return nil, mapGatewayError(err, "App", id)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldAppID:  id,
		LogFieldUserID: claims.UserID,
	}).Info("App deleted")
	return result, nil
}

// ChatwootLocales lists the locales supported by the gateway's chatwoot
// integration. Not ownership-scoped; the listing is static.
func (s *AppService) ChatwootLocales(ctx context.Context) ([]types.Locale, error) {
	locales, err := s.gateway.GetChatwootLocales(ctx)
	if err != nil {
		return nil, mapGatewayError(err, "", "")
	}
	return locales, nil
}
