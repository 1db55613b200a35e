package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/fbsfernando/bot-link-manager/internal/migrations"
	"github.com/fbsfernando/bot-link-manager/internal/models"
	"github.com/fbsfernando/bot-link-manager/internal/security"

	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db        *sql.DB
	encryptor *encryptor
}

func New(dbPath string) (*Database, error) {
	if len(dbPath) == 0 || dbPath[0] == '\x00' {
		return nil, fmt.Errorf("invalid database path")
	}

	// Validate database path to prevent directory traversal
	if err := security.ValidateFilePath(dbPath); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	file, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create database file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema, err := migrations.GetInitialSchema()
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to read schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	encryptor, err := NewEncryptor()
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize encryptor: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize encryptor: %w", err)
	}

	return &Database{db: db, encryptor: encryptor}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetProfileByUserID returns the profile for the given user, or nil when
// no profile exists yet.
func (d *Database) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, api_key, max_connections, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`

	profile, err := d.scanProfile(d.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetProfileByEmail returns the profile with the given email, or nil when
// none exists. Email is stored with deterministic encryption so this stays
// an indexed equality lookup.
func (d *Database) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	encryptedEmail, err := d.encryptor.EncryptForLookupIfEnabled(email)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt email: %w", err)
	}

	query := `
		SELECT id, user_id, email, full_name, api_key, max_connections, created_at, updated_at
		FROM profiles
		WHERE email = ?
	`

	profile, err := d.scanProfile(d.db.QueryRowContext(ctx, query, encryptedEmail))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (d *Database) CreateProfile(ctx context.Context, profile *models.Profile) error {
	encryptedEmail, err := d.encryptor.EncryptForLookupIfEnabled(profile.Email)
	if err != nil {
		return fmt.Errorf("failed to encrypt email: %w", err)
	}

	encryptedAPIKey, err := d.encryptor.EncryptIfEnabled(profile.APIKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	query := `
		INSERT INTO profiles (id, user_id, email, full_name, api_key, max_connections)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = d.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		encryptedEmail,
		profile.FullName,
		encryptedAPIKey,
		profile.MaxConnections,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// UpdateProfileAPIKey replaces the stored API key for a user.
func (d *Database) UpdateProfileAPIKey(ctx context.Context, userID, apiKey string) error {
	encryptedAPIKey, err := d.encryptor.EncryptIfEnabled(apiKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt API key: %w", err)
	}

	query := `
		UPDATE profiles
		SET api_key = ?, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = ?
	`

	result, err := d.db.ExecContext(ctx, query, encryptedAPIKey, userID)
	if err != nil {
		return fmt.Errorf("failed to update API key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListConnectionsByUser returns the user's legacy connection records,
// newest first. The table is read-only; nothing in the service writes it.
func (d *Database) ListConnectionsByUser(ctx context.Context, userID string) ([]models.Connection, error) {
	query := `
		SELECT id, user_id, name, status, api_key, webhook_url,
			   proxy_host, proxy_port, proxy_username, proxy_password,
			   qr_code, pairing_code, debug_mode, allow_channels,
			   allow_numbers, allow_status, last_connected_at,
			   created_at, updated_at
		FROM whatsapp_connections
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var connections []models.Connection
	for rows.Next() {
		var conn models.Connection
		var lastConnectedAt sql.NullTime
		err := rows.Scan(
			&conn.ID,
			&conn.UserID,
			&conn.Name,
			&conn.Status,
			&conn.APIKey,
			&conn.WebhookURL,
			&conn.ProxyHost,
			&conn.ProxyPort,
			&conn.ProxyUsername,
			&conn.ProxyPassword,
			&conn.QRCode,
			&conn.PairingCode,
			&conn.DebugMode,
			&conn.AllowChannels,
			&conn.AllowNumbers,
			&conn.AllowStatus,
			&lastConnectedAt,
			&conn.CreatedAt,
			&conn.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		if lastConnectedAt.Valid {
			t := lastConnectedAt.Time
			conn.LastConnectedAt = &t
		}
		if conn.APIKey != nil {
			decrypted, err := d.encryptor.DecryptIfEnabled(*conn.APIKey)
			if err != nil {
				return nil, fmt.Errorf("failed to decrypt connection API key: %w", err)
			}
			conn.APIKey = &decrypted
		}
		connections = append(connections, conn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}
	return connections, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (d *Database) scanProfile(row rowScanner) (*models.Profile, error) {
	var profile models.Profile
	var fullName sql.NullString
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Email,
		&fullName,
		&profile.APIKey,
		&profile.MaxConnections,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if fullName.Valid {
		profile.FullName = fullName.String
	}
	profile.CreatedAt = createdAt
	profile.UpdatedAt = updatedAt

	decryptedEmail, err := d.encryptor.DecryptIfEnabled(profile.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt email: %w", err)
	}
	profile.Email = decryptedEmail

	decryptedKey, err := d.encryptor.DecryptIfEnabled(profile.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt API key: %w", err)
	}
	profile.APIKey = decryptedKey

	return &profile, nil
}
