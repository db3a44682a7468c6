package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
	"github.com/stemsi/schoolcrm-backend/internal/session"
)

// SignupInput is a self-service account request.
type SignupInput struct {
	Name          string
	Email         string
	Password      string
	Role          model.Role
	Gender        model.Gender
	DateOfBirth   *time.Time
	ContactNumber string
	Salary        float64
}

// AuthService handles signup, login and the session lifecycle.
type AuthService struct {
	users    repository.UserRepository
	sessions session.Store
	codec    *session.TokenCodec
	hasher   PasswordHasher
	ttl      time.Duration
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users repository.UserRepository,
	sessions session.Store,
	codec *session.TokenCodec,
	hasher PasswordHasher,
	ttl time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		codec:    codec,
		hasher:   hasher,
		ttl:      ttl,
		log:      log,
	}
}

// SessionTTL is the fixed lifetime of issued sessions.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}

// Signup creates a teacher or student account. Admins cannot sign up.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if in.Role != model.RoleTeacher && in.Role != model.RoleStudent {
		return nil, ErrInvalidRole
	}

	// Explicit pre-check; the unique index still guards concurrent signups.
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:          in.Name,
		Email:         in.Email,
		Password:      stored,
		Role:          in.Role,
		Gender:        in.Gender,
		DateOfBirth:   in.DateOfBirth,
		ContactNumber: in.ContactNumber,
	}
	if in.Role == model.RoleTeacher {
		user.Salary = in.Salary
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User signed up")
	return user, nil
}

// Login checks credentials. Unknown email and wrong password both yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// StartSession issues a new session for user and returns the signed cookie value.
func (s *AuthService) StartSession(ctx context.Context, user *model.User) (string, error) {
	now := time.Now()
	id := session.NewID()
	identity := session.Identity{
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.codec.Encode(id, user.ID, identity.ExpiresAt)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Set(ctx, id, identity, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession maps a cookie value to its live identity. It returns
// session.ErrNoSession when the cookie is unusable or the session is gone.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*session.Identity, error) {
	if token == "" {
		return nil, session.ErrNoSession
	}
	id, err := s.codec.Decode(token)
	if err != nil {
		return nil, session.ErrNoSession
	}
	return s.sessions.Get(ctx, id)
}

// EndSession destroys the session named by the cookie value. Unusable
// cookies are treated as already logged out.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	id, err := s.codec.Decode(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Destroy(ctx, id); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
