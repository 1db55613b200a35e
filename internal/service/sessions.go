package service

import (
	"context"
	"encoding/base64"

	"github.com/fbsfernando/bot-link-manager/internal/auth"
	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/internal/privacy"
	"github.com/fbsfernando/bot-link-manager/internal/validation"
	"github.com/fbsfernando/bot-link-manager/pkg/waha/types"

	"github.com/sirupsen/logrus"
)

// QRCode is a base64-encoded pairing image ready for the dashboard.
type QRCode struct {
	Data     string `json:"data"`
	Mimetype string `json:"mimetype"`
}

// SessionService owns every session operation: validation, quota, owner
// stamping and the ownership gate in front of the gateway.
type SessionService struct {
	gateway  types.GatewayClient
	profiles *ProfileService
	locks    *userLocks
	logger   *logrus.Logger
}

func NewSessionService(gateway types.GatewayClient, profiles *ProfileService, logger *logrus.Logger) *SessionService {
	return &SessionService{
		gateway:  gateway,
		profiles: profiles,
		locks:    newUserLocks(),
		logger:   logger,
	}
}

// Create validates the requested name, enforces the caller's session
// quota and stamps owner metadata before forwarding to the gateway. The
// quota check-then-create sequence is serialized per user.
func (s *SessionService) Create(ctx context.Context, claims *auth.Claims, req *types.CreateSessionRequest) (*types.Session, error) {
	name, err := validation.ValidateSessionName(req.Name)
	if err != nil {
		return nil, err
	}
	req.Name = name

	unlock := s.locks.Lock(claims.UserID)
	defer unlock()

	profile, err := s.profiles.ensure(ctx, claims)
	if err != nil {
		return nil, err
	}

	owned, err := s.listOwned(ctx, claims)
	if err != nil {
		return nil, err
	}
	if len(owned) >= profile.MaxConnections {
		s.logger.WithFields(logrus.Fields{
			LogFieldUserID: claims.UserID,
			LogFieldCount:  len(owned),
		}).Warn("Session quota reached")
		return nil, errors.NewQuotaExceededError(profile.MaxConnections, len(owned))
	}

	if req.Config == nil {
		req.Config = &types.SessionConfig{}
	}
	if req.Config.Metadata == nil {
		req.Config.Metadata = make(map[string]string)
	}
	req.Config.Metadata[types.MetadataUserID] = claims.UserID
	req.Config.Metadata[types.MetadataUserEmail] = claims.Email

	session, err := s.gateway.CreateSession(ctx, req)
	if err != nil {
		return nil, mapGatewayError(err, "", "")
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldSession:   session.Name,
		LogFieldUserID:    claims.UserID,
		LogFieldUserEmail: privacy.MaskEmail(claims.Email),
	}).Info("Session created")
	return session, nil
}

// List returns the caller's sessions. The gateway is asked for the full
// listing (stopped sessions included) and filtered by owner email.
func (s *SessionService) List(ctx context.Context, claims *auth.Claims) ([]types.Session, error) {
	return s.listOwned(ctx, claims)
}

func (s *SessionService) listOwned(ctx context.Context, claims *auth.Claims) ([]types.Session, error) {
	all, err := s.gateway.ListSessions(ctx, true)
	if err != nil {
		return nil, mapGatewayError(err, "", "")
	}

	owned := make([]types.Session, 0, len(all))
	for _, session := range all {
		if session.OwnerEmail() == claims.Email {
			owned = append(owned, session)
		}
	}
	return owned, nil
}

// verifyOwnership fetches the named session and checks the caller owns
// it. Sessions without owner metadata are treated as foreign.
func (s *SessionService) verifyOwnership(ctx context.Context, claims *auth.Claims, name string) (*types.Session, error) {
	session, err := s.gateway.GetSession(ctx, name)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}

	if session.OwnerEmail() != claims.Email {
		s.logger.WithFields(logrus.Fields{
			LogFieldSession: name,
			LogFieldUserID:  claims.UserID,
		}).Warn("Ownership check failed")
		return nil, errors.NewForbiddenError("You do not have access to this session")
	}
	return session, nil
}

// Update applies a config change while keeping the protected owner
// metadata intact: the current config is fetched, `user.id` and
// `user.email` are stripped from the caller's metadata, and the stored
// values are carried over. Serialized per user against concurrent merges.
func (s *SessionService) Update(ctx context.Context, claims *auth.Claims, name string, req *types.UpdateSessionRequest) (*types.Session, error) {
	unlock := s.locks.Lock(claims.UserID)
	defer unlock()

	current, err := s.verifyOwnership(ctx, claims, name)
	if err != nil {
		return nil, err
	}

	if req.Config == nil {
		req.Config = &types.SessionConfig{}
	}

	merged := make(map[string]string, len(req.Config.Metadata)+2)
	for k, v := range req.Config.Metadata {
		if k == types.MetadataUserID || k == types.MetadataUserEmail {
			continue
		}
		merged[k] = v
	}
	merged[types.MetadataUserID] = claims.UserID
	merged[types.MetadataUserEmail] = claims.Email
	if current.Config != nil {
		if v, ok := current.Config.Metadata[types.MetadataUserID]; ok {
			merged[types.MetadataUserID] = v
		}
		if v, ok := current.Config.Metadata[types.MetadataUserEmail]; ok {
			merged[types.MetadataUserEmail] = v
		}
	}
	req.Config.Metadata = merged

	session, err := s.gateway.UpdateSession(ctx, name, req)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldSession: name,
		LogFieldUserID:  claims.UserID,
	}).Info("Session updated")
	return session, nil
}

// Start starts a stopped session.
func (s *SessionService) Start(ctx context.Context, claims *auth.Claims, name string) (*types.Session, error) {
	if _, err := s.verifyOwnership(ctx, claims, name); err != nil {
		return nil, err
	}
	session, err := s.gateway.StartSession(ctx, name)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}
	return session, nil
}

// Restart restarts the caller's session.
func (s *SessionService) Restart(ctx context.Context, claims *auth.Claims, name string) (*types.Session, error) {
	if _, err := s.verifyOwnership(ctx, claims, name); err != nil {
		return nil, err
	}
	session, err := s.gateway.RestartSession(ctx, name)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}
	return session, nil
}

// Stop stops the caller's session.
func (s *SessionService) Stop(ctx context.Context, claims *auth.Claims, name string) (*types.Session, error) {
	if _, err := s.verifyOwnership(ctx, claims, name); err != nil {
		return nil, err
	}
	session, err := s.gateway.StopSession(ctx, name)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}
	return session, nil
}

// Logout logs the session's device out without removing the session.
func (s *SessionService) Logout(ctx context.Context, claims *auth.Claims, name string) (*types.Session, error) {
	if _, err := s.verifyOwnership(ctx, claims, name); err != nil {
		return nil, err
	}
	session, err := s.gateway.LogoutSession(ctx, name)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}
	return session, nil
}

// Delete removes the caller's session from the gateway.
func (s *SessionService) Delete(ctx context.Context, claims *auth.Claims, name string) error {
	if _, err := s.verifyOwnership(ctx, claims, name); err != nil {
		return err
	}
	if err := s.gateway.DeleteSession(ctx, name); err != nil {
		return mapGatewayError(err, "Session", name)
	}

	s.logger.WithFields(logrus.Fields{
		LogFieldSession: name,
		LogFieldUserID:  claims.UserID,
	}).Info("Session deleted")
	return nil
}

// QR fetches the pairing QR image for the caller's session, base64
// encoded for direct embedding by the dashboard.
func (s *SessionService) QR(ctx context.Context, claims *auth.Claims, name string) (*QRCode, error) {
	if _, err := s.verifyOwnership(ctx, claims, name); err != nil {
		return nil, err
	}

	data, mimetype, err := s.gateway.GetQRCode(ctx, name)
	if err != nil {
		return nil, mapGatewayError(err, "Session", name)
	}

	return &QRCode{
		Data:     base64.StdEncoding.EncodeToString(data),
		Mimetype: mimetype,
	}, nil
}
