package waha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(types.ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-api-key",
		Timeout: 5 * time.Second,
	})
	return client, server
}

func TestListSessions(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sessions", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("all"))
		assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))

		json.NewEncoder(w).Encode([]types.Session{
			{Name: "alpha", Status: types.SessionStatusWorking},
			{Name: "beta", Status: types.SessionStatusStopped},
		})
	})
	defer server.Close()

	sessions, err := client.ListSessions(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "alpha", sessions[0].Name)
}

func TestGetSession(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sessions/my-bot", r.URL.Path)
		json.NewEncoder(w).Encode(types.Session{Name: "my-bot", Status: types.SessionStatusScanQR})
	})
	defer server.Close()

	session, err := client.GetSession(context.Background(), "my-bot")
	require.NoError(t, err)
	assert.Equal(t, types.SessionStatusScanQR, session.Status)
}

func TestCreateSession(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sessions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload types.CreateSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "my-bot", payload.Name)
		assert.Equal(t, "alice@example.com", payload.Config.Metadata[types.MetadataUserEmail])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(types.Session{Name: payload.Name, Status: types.SessionStatusStarting})
	})
	defer server.Close()

	session, err := client.CreateSession(context.Background(), &types.CreateSessionRequest{
		Name: "my-bot",
		Config: &types.SessionConfig{
			Metadata: map[string]string{types.MetadataUserEmail: "alice@example.com"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "my-bot", session.Name)
}

func TestUpdateSession(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/sessions/my-bot", r.URL.Path)
		json.NewEncoder(w).Encode(types.Session{Name: "my-bot"})
	})
	defer server.Close()

	_, err := client.UpdateSession(context.Background(), "my-bot", &types.UpdateSessionRequest{
		Config: &types.SessionConfig{Debug: true},
	})
	require.NoError(t, err)
}

func TestDeleteSession(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/sessions/my-bot", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	require.NoError(t, client.DeleteSession(context.Background(), "my-bot"))
}

func TestSessionActions(t *testing.T) {
	tests := []struct {
		name   string
		action string
		call   func(c *Client) (*types.Session, error)
	}{
		{"start", "start", func(c *Client) (*types.Session, error) {
			return c.StartSession(context.Background(), "my-bot")
		}},
		{"stop", "stop", func(c *Client) (*types.Session, error) {
			return c.StopSession(context.Background(), "my-bot")
		}},
		{"restart", "restart", func(c *Client) (*types.Session, error) {
			return c.RestartSession(context.Background(), "my-bot")
		}},
		{"logout", "logout", func(c *Client) (*types.Session, error) {
			return c.LogoutSession(context.Background(), "my-bot")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/sessions/my-bot/"+tt.action, r.URL.Path)
				json.NewEncoder(w).Encode(types.Session{Name: "my-bot"})
			})
			defer server.Close()

			session, err := tt.call(client)
			require.NoError(t, err)
			assert.Equal(t, "my-bot", session.Name)
		})
	}
}

func TestStatusErrorPreservesBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"session already exists"}`))
	})
	defer server.Close()

	_, err := client.CreateSession(context.Background(), &types.CreateSessionRequest{Name: "dup"})
	require.Error(t, err)

	statusErr, ok := err.(*StatusError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "session already exists")
}

func TestGetQRCode(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/my-bot/auth/qr", r.URL.Path)
		assert.Equal(t, "image", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})
	defer server.Close()

	data, mimetype, err := client.GetQRCode(context.Background(), "my-bot")
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, "image/png", mimetype)
}

func TestGetQRCode_NotReady(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("QR not available in current state"))
	})
	defer server.Close()

	_, _, err := client.GetQRCode(context.Background(), "my-bot")
	require.Error(t, err)

	statusErr, ok := err.(*StatusError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
}

func TestCreateApp(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/apps", r.URL.Path)

		var app types.App
		require.NoError(t, json.NewDecoder(r.Body).Decode(&app))
		assert.Equal(t, "chatwoot", app.App)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(app)
	})
	defer server.Close()

	created, err := client.CreateApp(context.Background(), &types.App{
		ID:      "my-bot-chatwoot",
		Session: "my-bot",
		App:     "chatwoot",
		Config:  map[string]interface{}{"url": "https://chatwoot.example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "my-bot-chatwoot", created.ID)
}

func TestDeleteApp_ResponseShapes(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/apps/my-bot-chatwoot", r.URL.Path)
			w.Write([]byte(`{"deleted":true}`))
		})
		defer server.Close()

		result, err := client.DeleteApp(context.Background(), "my-bot-chatwoot")
		require.NoError(t, err)
		assert.JSONEq(t, `{"deleted":true}`, string(result))
	})

	t.Run("empty body", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		defer server.Close()

		result, err := client.DeleteApp(context.Background(), "my-bot-chatwoot")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("plain text body", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("app removed"))
		})
		defer server.Close()

		result, err := client.DeleteApp(context.Background(), "my-bot-chatwoot")
		require.NoError(t, err)
		assert.Equal(t, `"app removed"`, string(result))
	})

	t.Run("upstream error", func(t *testing.T) {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("app not found"))
		})
		defer server.Close()

		_, err := client.DeleteApp(context.Background(), "my-bot-chatwoot")
		require.Error(t, err)

		statusErr, ok := err.(*StatusError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, "app not found", statusErr.Body)
	})
}

func TestGetChatwootLocales(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/apps/chatwoot/locales", r.URL.Path)
		json.NewEncoder(w).Encode([]types.Locale{
			{Code: "en", Name: "English"},
			{Code: "pt_BR", Name: "Portuguese (Brazil)"},
		})
	})
	defer server.Close()

	locales, err := client.GetChatwootLocales(context.Background())
	require.NoError(t, err)
	require.Len(t, locales, 2)
	assert.Equal(t, "pt_BR", locales[1].Code)
}
