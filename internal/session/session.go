// Package session tracks authenticated identities behind opaque session ids.
//
// A Store maps a session id to the Identity it was issued for. Handlers never
// touch a backend directly; Redis and in-memory stores are interchangeable.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/stemsi/schoolcrm-backend/internal/model"
)

// ErrNoSession is returned when a session id has no live entry.
var ErrNoSession = errors.New("no active session")

// Identity is what a session proves: who logged in, as what, and until when.
type Identity struct {
	UserID    string     `json:"user_id"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the identity is past its expiry at now.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Store is the session backend.
type Store interface {
	// Get returns the identity for id, or ErrNoSession when absent or expired.
	Get(ctx context.Context, id string) (*Identity, error)
	// Set binds id to identity for ttl.
	Set(ctx context.Context, id string, identity Identity, ttl time.Duration) error
	// Destroy removes id. Destroying an absent id is not an error.
	Destroy(ctx context.Context, id string) error
}
