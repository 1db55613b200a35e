package service

import (
	"context"

	"github.com/fbsfernando/bot-link-manager/internal/models"
)

// ProfileStore is the persistence surface the services need. Implemented
// by *database.Database; tests substitute fakes.
type ProfileStore interface {
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfileAPIKey(ctx context.Context, userID, apiKey string) error
	ListConnectionsByUser(ctx context.Context, userID string) ([]models.Connection, error)
}
