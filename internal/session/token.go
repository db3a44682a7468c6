package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for cookies that fail signature or shape checks.
var ErrInvalidToken = errors.New("invalid session token")

// TokenCodec signs session ids into the cookie value so a forged or
// truncated cookie is rejected before the store is consulted.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec keyed by the session secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// Encode signs sessionID for userID with the given expiry.
func (c *TokenCodec) Encode(sessionID, userID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the session id it carries.
func (c *TokenCodec) Decode(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}
