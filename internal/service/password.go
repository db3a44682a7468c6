package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plain password into its stored form and checks a
// candidate against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, candidate string) bool
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// PlainHasher stores passwords as given and compares them by equality.
// It exists only for parity with legacy data; it offers no protection.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// NewPasswordHasher picks the hasher named by PASSWORD_STORAGE.
func NewPasswordHasher(storage string, bcryptCost int) (PasswordHasher, error) {
	switch storage {
	case "bcrypt", "":
		return BcryptHasher{Cost: bcryptCost}, nil
	case "plain":
		return PlainHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password storage %q", storage)
	}
}
