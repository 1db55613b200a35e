package waha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"
)

// StatusError is a non-2xx response from the gateway. The upstream status
// and body are preserved verbatim so handlers can pass them through.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("WAHA API error: %d %s - %s", e.StatusCode, e.Status, e.Body)
}

// Client is an HTTP client for the WAHA gateway API
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a gateway client from the given configuration
func NewClient(cfg types.ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	return req, nil
}

// do executes the request and decodes a 2xx JSON response into out.
// Non-2xx responses come back as *StatusError with the body preserved.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(data),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListSessions returns sessions known to the gateway. With all set, stopped
// sessions are included; the ownership filter needs the complete listing.
func (c *Client) ListSessions(ctx context.Context, all bool) ([]types.Session, error) {
	path := "/api/sessions"
	if all {
		path += "?all=true"
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var sessions []types.Session
	if err := c.do(req, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a single session by name
func (c *Client) GetSession(ctx context.Context, name string) (*types.Session, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	var session types.Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateSession creates a session on the gateway
func (c *Client) CreateSession(ctx context.Context, payload *types.CreateSessionRequest) (*types.Session, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/sessions", payload)
	if err != nil {
		return nil, err
	}
	var session types.Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession replaces the session configuration
func (c *Client) UpdateSession(ctx context.Context, name string, payload *types.UpdateSessionRequest) (*types.Session, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/sessions/"+url.PathEscape(name), payload)
	if err != nil {
		return nil, err
	}
	var session types.Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession removes a session from the gateway
func (c *Client) DeleteSession(ctx context.Context, name string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(name), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// StartSession starts a stopped session
func (c *Client) StartSession(ctx context.Context, name string) (*types.Session, error) {
	return c.sessionAction(ctx, name, "start")
}

// StopSession stops a running session
func (c *Client) StopSession(ctx context.Context, name string) (*types.Session, error) {
	return c.sessionAction(ctx, name, "stop")
}

// RestartSession restarts a session
func (c *Client) RestartSession(ctx context.Context, name string) (*types.Session, error) {
	return c.sessionAction(ctx, name, "restart")
}

// LogoutSession logs the session's device out without deleting the session
func (c *Client) LogoutSession(ctx context.Context, name string) (*types.Session, error) {
	return c.sessionAction(ctx, name, "logout")
}

func (c *Client) sessionAction(ctx context.Context, name, action string) (*types.Session, error) {
	path := fmt.Sprintf("/api/sessions/%s/%s", url.PathEscape(name), action)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}
	var session types.Session
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetQRCode fetches the pairing QR for a session as raw image bytes.
// Returns the bytes and the mimetype reported by the gateway.
func (c *Client) GetQRCode(ctx context.Context, name string) ([]byte, string, error) {
	path := fmt.Sprintf("/api/%s/auth/qr?format=image", url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/png")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(data),
		}
	}

	mimetype := resp.Header.Get("Content-Type")
	if mimetype == "" {
		mimetype = "image/png"
	}
	return data, mimetype, nil
}
