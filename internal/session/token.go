package session

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/staffing-portal/internal/domain"
)

// Claims is the part of the token payload the portal reads.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// ExpiresAt returns the exp claim as a time, zero when the token has none.
func (c Claims) ExpiresAt() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired reports whether exp*1000 is before now in milliseconds. A token
// without exp never expires.
func (c Claims) Expired(now time.Time) bool {
	exp := c.ExpiresAt()
	if exp.IsZero() {
		return false
	}
	return exp.Unix()*1000 < now.UnixMilli()
}

// DecodeSession reads role and expiry from a token without verifying its
// signature. Verification belongs to the staffing API; the portal only
// decides where to send the browser.
func DecodeSession(token string) (Claims, error) {
	var claims Claims
	if token == "" {
		return claims, errors.New("empty token")
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}
