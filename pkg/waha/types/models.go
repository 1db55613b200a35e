package types

import "time"

// SessionStatus represents the connection state reported by the gateway
type SessionStatus string

const (
	SessionStatusStopped  SessionStatus = "STOPPED"
	SessionStatusStarting SessionStatus = "STARTING"
	SessionStatusScanQR   SessionStatus = "SCAN_QR_CODE"
	SessionStatusWorking  SessionStatus = "WORKING"
	SessionStatusFailed   SessionStatus = "FAILED"
)

// Protected metadata keys stamped on every session at creation time.
// End users can never overwrite these through the update path.
const (
	MetadataUserID    = "user.id"
	MetadataUserEmail = "user.email"
)

// Me is the connected WhatsApp identity of a session
type Me struct {
	ID       string `json:"id"`
	PushName string `json:"pushName"`
}

// Proxy holds outbound proxy settings for a session
type Proxy struct {
	Server   string `json:"server"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// WebhookHMAC holds the HMAC signing key for a webhook subscription
type WebhookHMAC struct {
	Key string `json:"key"`
}

// WebhookRetries holds the retry policy forwarded to the gateway.
// The gateway executes the policy; this service only carries it as data.
type WebhookRetries struct {
	DelaySeconds int    `json:"delaySeconds"`
	Attempts     int    `json:"attempts"`
	Policy       string `json:"policy"`
}

// CustomHeader is a single custom HTTP header attached to webhook deliveries
type CustomHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Webhook is one webhook subscription on a session
type Webhook struct {
	URL           string          `json:"url"`
	Events        []string        `json:"events"`
	HMAC          *WebhookHMAC    `json:"hmac,omitempty"`
	Retries       *WebhookRetries `json:"retries,omitempty"`
	CustomHeaders []CustomHeader  `json:"customHeaders,omitempty"`
}

// SessionConfig is the behavior configuration attached to a session
type SessionConfig struct {
	Metadata map[string]string `json:"metadata,omitempty"`
	Proxy    *Proxy            `json:"proxy,omitempty"`
	Debug    bool              `json:"debug"`
	Webhooks []Webhook         `json:"webhooks,omitempty"`
}

// Session is a named WhatsApp connection instance owned by the gateway
type Session struct {
	Name           string         `json:"name"`
	Status         SessionStatus  `json:"status"`
	Me             *Me            `json:"me,omitempty"`
	AssignedWorker string         `json:"assignedWorker,omitempty"`
	Config         *SessionConfig `json:"config,omitempty"`
}

// OwnerEmail returns the protected owner-email metadata entry, or "" when absent
func (s *Session) OwnerEmail() string {
	if s.Config == nil || s.Config.Metadata == nil {
		return ""
	}
	return s.Config.Metadata[MetadataUserEmail]
}

// CreateSessionRequest is the payload for session creation
type CreateSessionRequest struct {
	Name   string         `json:"name"`
	Start  *bool          `json:"start,omitempty"`
	Config *SessionConfig `json:"config,omitempty"`
}

// UpdateSessionRequest is the payload for session updates
type UpdateSessionRequest struct {
	Config *SessionConfig `json:"config"`
}

// App is an integration add-on bound to a session (e.g. chatwoot)
type App struct {
	ID      string                 `json:"id"`
	Session string                 `json:"session"`
	App     string                 `json:"app"`
	Enabled *bool                  `json:"enabled,omitempty"`
	Config  map[string]interface{} `json:"config"`
}

// Locale is one entry from the chatwoot locales listing. The gateway is not
// consistent about field names across versions, so everything is optional.
type Locale struct {
	Code       string `json:"code,omitempty"`
	Locale     string `json:"locale,omitempty"`
	Name       string `json:"name,omitempty"`
	NativeName string `json:"nativeName,omitempty"`
}

// ClientConfig configures the gateway HTTP client
type ClientConfig struct {
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"api_key"`
	Timeout time.Duration `json:"timeout"`
}
