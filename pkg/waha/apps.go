package waha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"
)

// CreateApp binds an integration app to a session
func (c *Client) CreateApp(ctx context.Context, app *types.App) (*types.App, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/apps", app)
	if err != nil {
		return nil, err
	}
	var created types.App
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateApp replaces an existing integration app configuration
func (c *Client) UpdateApp(ctx context.Context, id string, app *types.App) (*types.App, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/apps/"+url.PathEscape(id), app)
	if err != nil {
		return nil, err
	}
	var updated types.App
	if err := c.do(req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteApp removes an integration app. The gateway sometimes answers with an
// empty body, sometimes with JSON, and sometimes with plain text; the result
// is valid JSON either way (plain text comes back as a JSON string).
func (c *Client) DeleteApp(ctx context.Context, id string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/apps/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(data),
		}
	}

	if len(data) == 0 {
		return nil, nil
	}
	if json.Valid(data) {
		return json.RawMessage(data), nil
	}
	quoted, err := json.Marshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to encode response body: %w", err)
	}
	return json.RawMessage(quoted), nil
}

// GetChatwootLocales lists the locales the gateway's chatwoot app supports
func (c *Client) GetChatwootLocales(ctx context.Context) ([]types.Locale, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/apps/chatwoot/locales", nil)
	if err != nil {
		return nil, err
	}
	var locales []types.Locale
	if err := c.do(req, &locales); err != nil {
		return nil, err
	}
	return locales, nil
}
