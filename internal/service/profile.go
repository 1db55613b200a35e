package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/fbsfernando/bot-link-manager/internal/auth"
	"github.com/fbsfernando/bot-link-manager/internal/constants"
	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/internal/models"
	"github.com/fbsfernando/bot-link-manager/internal/privacy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProfileService manages per-user account records. Profiles are created
// lazily on first touch with default quota and a fresh API key.
type ProfileService struct {
	store  ProfileStore
	logger *logrus.Logger
}

func NewProfileService(store ProfileStore, logger *logrus.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// Get returns the caller's profile, creating it when absent.
func (s *ProfileService) Get(ctx context.Context, claims *auth.Claims) (*models.Profile, error) {
	return s.ensure(ctx, claims)
}

// RegenerateAPIKey replaces the caller's personal API key with a fresh
// random one and returns it.
func (s *ProfileService) RegenerateAPIKey(ctx context.Context, claims *auth.Claims) (string, error) {
	if _, err := s.ensure(ctx, claims); err != nil {
		return "", err
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternalError, "failed to generate API key")
	}

	if err := s.store.UpdateProfileAPIKey(ctx, claims.UserID, apiKey); err != nil {
		return "", errors.NewDatabaseError("update api key", err)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldUserID: claims.UserID,
	}).Info("API key regenerated")
	return apiKey, nil
}

// Connections returns the caller's legacy connection records.
func (s *ProfileService) Connections(ctx context.Context, claims *auth.Claims) ([]models.Connection, error) {
	connections, err := s.store.ListConnectionsByUser(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("list connections", err)
	}
	return connections, nil
}

func (s *ProfileService) ensure(ctx context.Context, claims *auth.Claims) (*models.Profile, error) {
	profile, err := s.store.GetProfileByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("get profile", err)
	}
	if profile != nil {
		return profile, nil
	}

	// Session ownership is matched by email, so a second profile under
	// the same email would see (and count against) the first one's
	// sessions. Refuse to create the duplicate.
	existing, err := s.store.GetProfileByEmail(ctx, claims.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("get profile by email", err)
	}
	if existing != nil && existing.UserID != claims.UserID {
		s.logger.WithFields(logrus.Fields{
			LogFieldUserID:    claims.UserID,
			LogFieldUserEmail: privacy.MaskEmail(claims.Email),
		}).Warn("Email already bound to another profile")
		return nil, errors.NewForbiddenError("This email is already associated with another account")
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to generate API key")
	}

	profile = &models.Profile{
		ID:             uuid.NewString(),
		UserID:         claims.UserID,
		Email:          claims.Email,
		APIKey:         apiKey,
		MaxConnections: constants.DefaultMaxConnections,
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		return nil, errors.NewDatabaseError("create profile", err)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldUserID:    claims.UserID,
		LogFieldUserEmail: privacy.MaskEmail(claims.Email),
	}).Info("Profile created")
	return profile, nil
}

func generateAPIKey() (string, error) {
	buf := make([]byte, constants.DefaultAPIKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return "bk_" + hex.EncodeToString(buf), nil
}
