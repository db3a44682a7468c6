package repository

import (
	"context"
	"errors"

	"github.com/stemsi/schoolcrm-backend/internal/model"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// UserFilter narrows a user listing to one role plus the shared list params.
type UserFilter struct {
	Role model.Role
	model.ListParams
}

// UserRepository persists User documents. Email is unique across all users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, int, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	// SumSalary returns Σ salary over teachers, 0 when there are none.
	SumSalary(ctx context.Context) (float64, error)
	// SumFeesPaid returns Σ feesPaid over students, 0 when there are none.
	SumFeesPaid(ctx context.Context) (float64, error)
}

// ClassRepository persists Class documents.
type ClassRepository interface {
	GetByID(ctx context.Context, id string) (*model.Class, error)
	List(ctx context.Context, params model.ListParams) ([]model.Class, int, error)
	Create(ctx context.Context, c *model.Class) error
	Update(ctx context.Context, c *model.Class) error
	Delete(ctx context.Context, id string) error
	// SumFees returns Σ fee over all classes, 0 when there are none.
	SumFees(ctx context.Context) (float64, error)
}
