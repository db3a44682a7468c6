package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/schoolcrm-backend/internal/model"
)

const classColumns = `id, name, COALESCE(description, ''), COALESCE(teacher_id, ''), max_students,
	students, fee, created_at, updated_at`

var classSortColumns = map[string]string{
	"name":        "name",
	"fee":         "fee",
	"maxStudents": "max_students",
	"createdAt":   "created_at",
}

// PostgresClassRepository handles class data access on PostgreSQL.
type PostgresClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new PostgresClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *PostgresClassRepository {
	return &PostgresClassRepository{pool: pool}
}

func scanClass(row pgx.Row) (*model.Class, error) {
	c := &model.Class{}
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.TeacherID, &c.MaxStudents,
		&c.Students, &c.Fee, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a class by its ID.
func (r *PostgresClassRepository) GetByID(ctx context.Context, id string) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx, `SELECT `+classColumns+` FROM classes WHERE id = $1`, id))
}

// List retrieves one page of classes filtered by a case-insensitive substring of name.
func (r *PostgresClassRepository) List(ctx context.Context, p model.ListParams) ([]model.Class, int, error) {
	where := ` WHERE name ILIKE '%' || $1 || '%' ESCAPE '\'`
	args := []interface{}{escapeLike(p.Search)}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM classes`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + classColumns + ` FROM classes` + where +
		orderClause(classSortColumns, p.SortBy, p.Order) + ` LIMIT $2 OFFSET $3`
	args = append(args, p.Limit, p.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, 0, err
		}
		classes = append(classes, *c)
	}
	return classes, total, rows.Err()
}

// Create inserts a new class.
func (r *PostgresClassRepository) Create(ctx context.Context, c *model.Class) error {
	if c.Students == nil {
		c.Students = []string{}
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, description, teacher_id, max_students, students, fee)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.TeacherID, c.MaxStudents, c.Students, c.Fee,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *PostgresClassRepository) Update(ctx context.Context, c *model.Class) error {
	if c.Students == nil {
		c.Students = []string{}
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE classes SET name = $1, description = NULLIF($2, ''), teacher_id = NULLIF($3, ''),
		        max_students = $4, students = $5, fee = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING updated_at`,
		c.Name, c.Description, c.TeacherID, c.MaxStudents, c.Students, c.Fee, c.ID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete removes a class by its ID.
func (r *PostgresClassRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SumFees returns the sum of fees over every class.
func (r *PostgresClassRepository) SumFees(ctx context.Context) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(fee), 0)::float8 FROM classes`).Scan(&total)
	return total, err
}

var _ ClassRepository = (*PostgresClassRepository)(nil)
