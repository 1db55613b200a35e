package middleware

import (
	"context"
	"net/http"

	"github.com/fbsfernando/bot-link-manager/internal/auth"
	"github.com/fbsfernando/bot-link-manager/internal/errors"
	"github.com/fbsfernando/bot-link-manager/internal/httputil"
	"github.com/fbsfernando/bot-link-manager/internal/privacy"
	"github.com/fbsfernando/bot-link-manager/internal/service"

	"github.com/sirupsen/logrus"
)

type contextKey string

const claimsContextKey contextKey = "auth_claims"

// GetClaims returns the authenticated identity stored by Auth, or nil when
// the request never passed through it.
func GetClaims(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(claimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// WithClaims stores identity claims on the context. Exposed for handler tests.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Auth rejects requests without a valid bearer token and attaches the
// verified identity claims to the request context.
func Auth(verifier *auth.Verifier, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httputil.WriteError(w, errors.NewUnauthenticatedError("Authentication required"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.WithFields(logrus.Fields{
					service.LogFieldRemoteIP:  httputil.GetClientIP(r),
					service.LogFieldErrorType: "token_verification",
				}).WithError(err).Warn("Rejected bearer token")
				httputil.WriteError(w, errors.NewUnauthenticatedError("Invalid or expired token"))
				return
			}

			logger.WithFields(logrus.Fields{
				service.LogFieldUserID:    claims.UserID,
				service.LogFieldUserEmail: privacy.MaskEmail(claims.Email),
			}).Debug("Authenticated request")

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
