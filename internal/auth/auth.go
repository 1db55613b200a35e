package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the authenticated identity extracted from a bearer token.
type Claims struct {
	UserID string
	Email  string
}

// Verifier validates HS256 bearer tokens issued by the dashboard's
// identity provider.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a verifier for the given signing secret. An empty
// secret yields a verifier that rejects every token, so a misconfigured
// deployment fails closed instead of failing open.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token string and returns its identity
// claims. Expired signatures, wrong algorithms and missing claims all
// fail verification.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("token verification is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, fmt.Errorf("token missing sub claim")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("token missing email claim")
	}

	return &Claims{UserID: userID, Email: email}, nil
}

// ExtractBearerToken pulls the token out of an Authorization header
// value. Returns an empty string when the header is not a bearer
// credential.
func ExtractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
