package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
)

// UserInput carries the fields of a teacher or student create request.
type UserInput struct {
	Name            string
	Email           string
	Password        string
	Gender          model.Gender
	DateOfBirth     *time.Time
	ContactNumber   string
	AssignedClasses []string
	Salary          float64
	FeesPaid        float64
}

// UserPatch carries an update. Zero values mean "leave unchanged", so a field
// cannot be cleared through an update.
type UserPatch struct {
	Name            string
	Email           string
	Password        string
	Gender          model.Gender
	DateOfBirth     *time.Time
	ContactNumber   string
	AssignedClasses []string
	Salary          float64
	FeesPaid        float64
}

// UserService manages users of a single role, e.g. the teachers resource.
// Users of any other role are invisible to it.
type UserService struct {
	role   model.Role
	users  repository.UserRepository
	hasher PasswordHasher
	log    zerolog.Logger
}

// NewUserService creates a UserService scoped to role.
func NewUserService(role model.Role, users repository.UserRepository, hasher PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{role: role, users: users, hasher: hasher, log: log}
}

// Role is the role this service manages.
func (s *UserService) Role() model.Role {
	return s.role
}

// Create adds a user with the service's role.
func (s *UserService) Create(ctx context.Context, in UserInput) (*model.User, error) {
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
		Name:            in.Name,
		Email:           in.Email,
		Password:        stored,
		Role:            s.role,
		Gender:          in.Gender,
		DateOfBirth:     in.DateOfBirth,
		ContactNumber:   in.ContactNumber,
		AssignedClasses: in.AssignedClasses,
	}
	switch s.role {
	case model.RoleTeacher:
		user.Salary = in.Salary
	case model.RoleStudent:
		user.FeesPaid = in.FeesPaid
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(s.role)).Msg("User created")
	return user, nil
}

// List returns one page of users with the service's role.
func (s *UserService) List(ctx context.Context, params model.ListParams) (model.Page[model.PublicUser], error) {
	params = params.Normalize(model.UserSortFields)

	users, total, err := s.users.List(ctx, repository.UserFilter{Role: s.role, ListParams: params})
	if err != nil {
		return model.Page[model.PublicUser]{}, err
	}

	return model.Page[model.PublicUser]{
		Data:        model.PublicUsers(users),
		CurrentPage: params.Page,
		TotalPages:  params.TotalPages(total),
		TotalItems:  total,
	}, nil
}

// Get returns the user with id, or ErrUserNotFound when it does not exist or
// has a different role.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role != s.role {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a replace-if-present patch.
func (s *UserService) Update(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" {
		user.Name = patch.Name
	}
	if patch.Email != "" {
		user.Email = patch.Email
	}
	if patch.Password != "" {
		stored, err := s.hasher.Hash(patch.Password)
		if err != nil {
			return nil, err
		}
		user.Password = stored
	}
	if patch.Gender != "" {
		user.Gender = patch.Gender
	}
	if patch.DateOfBirth != nil {
		user.DateOfBirth = patch.DateOfBirth
	}
	if patch.ContactNumber != "" {
		user.ContactNumber = patch.ContactNumber
	}
	if len(patch.AssignedClasses) > 0 {
		user.AssignedClasses = patch.AssignedClasses
	}
	if patch.Salary != 0 && s.role == model.RoleTeacher {
		user.Salary = patch.Salary
	}
	if patch.FeesPaid != 0 && s.role == model.RoleStudent {
		user.FeesPaid = patch.FeesPaid
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailExists
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user with id if it has the service's role.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.log.Info().Str("user_id", id).Str("role", string(s.role)).Msg("User removed")
	return nil
}
