package models

import "time"

// ConnectionStatus is the state enum of the legacy connection model
type ConnectionStatus string

const (
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
	ConnectionStatusConnecting   ConnectionStatus = "connecting"
	ConnectionStatusConnected    ConnectionStatus = "connected"
	ConnectionStatusPaused       ConnectionStatus = "paused"
	ConnectionStatusError        ConnectionStatus = "error"
)

// Connection is the legacy locally-persisted connection record. It predates
// the gateway-backed session model and is kept read-only until its fate is
// settled; no handler writes to it.
type Connection struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Name            string           `json:"name"`
	Status          ConnectionStatus `json:"status"`
	APIKey          *string          `json:"api_key,omitempty"`
	WebhookURL      *string          `json:"webhook_url,omitempty"`
	ProxyHost       *string          `json:"proxy_host,omitempty"`
	ProxyPort       *int             `json:"proxy_port,omitempty"`
	ProxyUsername   *string          `json:"proxy_username,omitempty"`
	ProxyPassword   *string          `json:"proxy_password,omitempty"`
	QRCode          *string          `json:"qr_code,omitempty"`
	PairingCode     *string          `json:"pairing_code,omitempty"`
	DebugMode       bool             `json:"debug_mode"`
	AllowChannels   bool             `json:"allow_channels"`
	AllowNumbers    bool             `json:"allow_numbers"`
	AllowStatus     bool             `json:"allow_status"`
	LastConnectedAt *time.Time       `json:"last_connected_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
