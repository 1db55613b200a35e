package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fbsfernando/bot-link-manager/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "botlink.db")
	db, err := New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func testProfile(userID, email string) *models.Profile {
	return &models.Profile{
		ID:             uuid.NewString(),
		UserID:         userID,
		Email:          email,
		FullName:       "Test User",
		APIKey:         "bk_0123456789abcdef",
		MaxConnections: 5,
	}
}

func TestNew_InvalidPath(t *testing.T) {
	tests := []struct {
		name   string
		dbPath string
	}{
		{name: "empty path", dbPath: ""},
		{name: "null byte", dbPath: "\x00bad"},
		{name: "traversal", dbPath: "../../../etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.dbPath)
			assert.Error(t, err)
			assert.Nil(t, db)
		})
	}
}

func TestCreateAndGetProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	profile := testProfile("user-1", "alice@example.com")
	require.NoError(t, db.CreateProfile(ctx, profile))

	got, err := db.GetProfileByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "Test User", got.FullName)
	assert.Equal(t, "bk_0123456789abcdef", got.APIKey)
	assert.Equal(t, 5, got.MaxConnections)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetProfileByUserID_NotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetProfileByUserID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetProfileByEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateProfile(ctx, testProfile("user-1", "bob@example.com")))

	got, err := db.GetProfileByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)

	missing, err := db.GetProfileByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateProfile_DuplicateUserID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateProfile(ctx, testProfile("user-1", "a@example.com")))
	err := db.CreateProfile(ctx, testProfile("user-1", "b@example.com"))
	assert.Error(t, err)
}

func TestUpdateProfileAPIKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateProfile(ctx, testProfile("user-1", "a@example.com")))

	require.NoError(t, db.UpdateProfileAPIKey(ctx, "user-1", "bk_rotated"))

	got, err := db.GetProfileByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "bk_rotated", got.APIKey)
}

func TestUpdateProfileAPIKey_NoSuchUser(t *testing.T) {
	db := setupTestDB(t)

	err := db.UpdateProfileAPIKey(context.Background(), "missing", "bk_x")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListConnectionsByUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// The table is read-only from the service; seed it directly.
	_, err := db.db.ExecContext(ctx, `
		INSERT INTO whatsapp_connections (id, user_id, name, status, debug_mode)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.NewString(), "user-1", "primary", "connected", true)
	require.NoError(t, err)
	_, err = db.db.ExecContext(ctx, `
		INSERT INTO whatsapp_connections (id, user_id, name, status)
		VALUES (?, ?, ?, ?)
	`, uuid.NewString(), "user-2", "other", "disconnected")
	require.NoError(t, err)

	conns, err := db.ListConnectionsByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "primary", conns[0].Name)
	assert.Equal(t, models.ConnectionStatusConnected, conns[0].Status)
	assert.True(t, conns[0].DebugMode)
	assert.Nil(t, conns[0].APIKey)
	assert.Nil(t, conns[0].LastConnectedAt)

	empty, err := db.ListConnectionsByUser(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
