package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the access token says about its holder. Decoded for
// display only; the backend verifies signatures, this side never holds the
// key.
type Identity struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Nom    string `json:"nom"`
}

type identityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// DecodeIdentity parses the claims out of an access token without verifying
// its signature.
func DecodeIdentity(token string) (*Identity, error) {
	parser := jwt.NewParser()

	var claims identityClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}

	return &claims.Identity, nil
}

// TokenExpiry returns the token's expiry instant, zero when the claim is
// absent or the token unreadable.
func TokenExpiry(token string) time.Time {
	parser := jwt.NewParser()

	var claims identityClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
