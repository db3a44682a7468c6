package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/schoolcrm-backend/internal/model"
)

const pgUniqueViolation = "23505"

const userColumns = `id, name, email, password, role, COALESCE(gender, ''), date_of_birth,
	COALESCE(contact_number, ''), assigned_classes, salary, fees_paid, created_at, updated_at`

// userSortColumns maps wire sort keys to columns. Only whitelisted keys reach SQL.
var userSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
	"salary":    "salary",
	"feesPaid":  "fees_paid",
}

// PostgresUserRepository handles user data access on PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgresUserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var gender string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &gender, &u.DateOfBirth,
		&u.ContactNumber, &u.AssignedClasses, &u.Salary, &u.FeesPaid, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Gender = model.Gender(gender)
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByIDs retrieves every user whose ID is in ids. Missing IDs are skipped.
func (r *PostgresUserRepository) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// GetByEmail retrieves a user by their unique email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// List retrieves one page of users of a role, filtered by a case-insensitive
// substring of name, and the total number of matches.
func (r *PostgresUserRepository) List(ctx context.Context, f UserFilter) ([]model.User, int, error) {
	where := ` WHERE role = $1 AND name ILIKE '%' || $2 || '%' ESCAPE '\'`
	args := []interface{}{f.Role, escapeLike(f.Search)}

	// 1. Get total count
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// 2. Get paginated data
	query := `SELECT ` + userColumns + ` FROM users` + where +
		orderClause(userSortColumns, f.SortBy, f.Order) + ` LIMIT $3 OFFSET $4`
	args = append(args, f.Limit, f.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user and fills in its ID and timestamps.
func (r *PostgresUserRepository) Create(ctx context.Context, u *model.User) error {
	if u.AssignedClasses == nil {
		u.AssignedClasses = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role, gender, date_of_birth, contact_number,
		                    assigned_classes, salary, fees_paid)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Email, u.Password, u.Role, string(u.Gender), u.DateOfBirth, u.ContactNumber,
		u.AssignedClasses, u.Salary, u.FeesPaid,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapUserWriteErr(err)
}

// Update overwrites every mutable column of an existing user.
func (r *PostgresUserRepository) Update(ctx context.Context, u *model.User) error {
	if u.AssignedClasses == nil {
		u.AssignedClasses = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET name = $1, email = $2, password = $3, gender = NULLIF($4, ''),
		        date_of_birth = $5, contact_number = NULLIF($6, ''), assigned_classes = $7,
		        salary = $8, fees_paid = $9, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $10
		 RETURNING updated_at`,
		u.Name, u.Email, u.Password, string(u.Gender), u.DateOfBirth, u.ContactNumber,
		u.AssignedClasses, u.Salary, u.FeesPaid, u.ID,
	).Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return mapUserWriteErr(err)
}

// Delete removes a user by ID.
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SumSalary returns the total salary of all teachers.
func (r *PostgresUserRepository) SumSalary(ctx context.Context) (float64, error) {
	return r.sumByRole(ctx, "salary", model.RoleTeacher)
}

// SumFeesPaid returns the total fees paid by all students.
func (r *PostgresUserRepository) SumFeesPaid(ctx context.Context) (float64, error) {
	return r.sumByRole(ctx, "fees_paid", model.RoleStudent)
}

func (r *PostgresUserRepository) sumByRole(ctx context.Context, column string, role model.Role) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COALESCE(SUM(%s), 0)::float8 FROM users WHERE role = $1`, column), role,
	).Scan(&total)
	return total, err
}

func mapUserWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// orderClause builds ORDER BY from a whitelisted column, with id as tie-breaker
// so pages are stable.
func orderClause(columns map[string]string, sortBy string, order model.SortOrder) string {
	col, ok := columns[sortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if order == model.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", col, dir)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Compile-time interface check.
var _ UserRepository = (*PostgresUserRepository)(nil)
