package service

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/fbsfernando/bot-link-manager/internal/auth"
	"github.com/fbsfernando/bot-link-manager/internal/models"
	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testClaims() *auth.Claims {
	return &auth.Claims{UserID: "user-1", Email: "alice@example.com"}
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ListSessions(ctx context.Context, all bool) ([]types.Session, error) {
	args := m.Called(ctx, all)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Session), args.Error(1)
}

func (m *mockGateway) GetSession(ctx context.Context, name string) (*types.Session, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) CreateSession(ctx context.Context, payload *types.CreateSessionRequest) (*types.Session, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) UpdateSession(ctx context.Context, name string, payload *types.UpdateSessionRequest) (*types.Session, error) {
	args := m.Called(ctx, name, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) DeleteSession(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *mockGateway) StartSession(ctx context.Context, name string) (*types.Session, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) StopSession(ctx context.Context, name string) (*types.Session, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) RestartSession(ctx context.Context, name string) (*types.Session, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) LogoutSession(ctx context.Context, name string) (*types.Session, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *mockGateway) GetQRCode(ctx context.Context, name string) ([]byte, string, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *mockGateway) CreateApp(ctx context.Context, app *types.App) (*types.App, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.App), args.Error(1)
}

func (m *mockGateway) UpdateApp(ctx context.Context, id string, app *types.App) (*types.App, error) {
	args := m.Called(ctx, id, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.App), args.Error(1)
}

func (m *mockGateway) DeleteApp(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockGateway) GetChatwootLocales(ctx context.Context) ([]types.Locale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Locale), args.Error(1)
}

// fakeStore is an in-memory ProfileStore.
type fakeStore struct {
	mu          sync.Mutex
	profiles    map[string]*models.Profile
	connections map[string][]models.Connection
	failWith    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:    make(map[string]*models.Profile),
		connections: make(map[string][]models.Connection),
	}
}

func (f *fakeStore) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if p, ok := f.profiles[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	for _, p := range f.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeStore) UpdateProfileAPIKey(ctx context.Context, userID, apiKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if p, ok := f.profiles[userID]; ok {
		p.APIKey = apiKey
	}
	return nil
}

func (f *fakeStore) ListConnectionsByUser(ctx context.Context, userID string) ([]models.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.connections[userID], nil
}
