package types

import (
	"context"
	"encoding/json"
)

// GatewayClient is the full WAHA API surface used by the service layer.
// *waha.Client implements it; tests substitute fakes.
type GatewayClient interface {
	ListSessions(ctx context.Context, all bool) ([]Session, error)
	GetSession(ctx context.Context, name string) (*Session, error)
	CreateSession(ctx context.Context, payload *CreateSessionRequest) (*Session, error)
	UpdateSession(ctx context.Context, name string, payload *UpdateSessionRequest) (*Session, error)
	DeleteSession(ctx context.Context, name string) error
	StartSession(ctx context.Context, name string) (*Session, error)
	StopSession(ctx context.Context, name string) (*Session, error)
	RestartSession(ctx context.Context, name string) (*Session, error)
	LogoutSession(ctx context.Context, name string) (*Session, error)
	GetQRCode(ctx context.Context, name string) ([]byte, string, error)

	CreateApp(ctx context.Context, app *App) (*App, error)
	UpdateApp(ctx context.Context, id string, app *App) (*App, error)
	DeleteApp(ctx context.Context, id string) (json.RawMessage, error)
	GetChatwootLocales(ctx context.Context) ([]Locale, error)
}
