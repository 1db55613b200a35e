package models

import "time"

// Profile is the per-user account record holding quota and API-key data
type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	APIKey         string    `json:"api_key,omitempty"`
	MaxConnections int       `json:"max_connections"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
