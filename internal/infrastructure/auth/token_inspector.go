package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can read out of a stored bearer token
// without the signing key. The platform still validates every token; this
// exists only to warn the user before a call is bound to fail with a 401.
type TokenInfo struct {
	UserID    uint
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without an exp claim never report expired.
func (i *TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}

// TokenInspector decodes bearer-token claims without verifying the
// signature.
type TokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector creates a token inspector
func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: jwt.NewParser()}
}

// Inspect parses the token's claims. The signature is deliberately not
// checked; the result must never be used for authorization decisions.
func (t *TokenInspector) Inspect(token string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := t.parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	info := &TokenInfo{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if userID, ok := claims["user_id"].(float64); ok {
		info.UserID = uint(userID)
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	return info, nil
}
