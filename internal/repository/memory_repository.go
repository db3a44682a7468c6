package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/schoolcrm-backend/internal/model"
)

// timeNow stamps in-memory documents; tests may pin it.
var timeNow = func() time.Time { return time.Now().UTC() }

// MemoryStore holds users and classes in process memory. It backs
// STORE_DRIVER=memory and the test suites.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]model.User
	classes map[string]model.Class
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]model.User),
		classes: make(map[string]model.Class),
	}
}

// Users returns the store's UserRepository view.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{s: s}
}

// Classes returns the store's ClassRepository view.
func (s *MemoryStore) Classes() *MemoryClassRepository {
	return &MemoryClassRepository{s: s}
}

// MemoryUserRepository implements UserRepository over a MemoryStore.
type MemoryUserRepository struct {
	s *MemoryStore
}

func cloneUser(u model.User) model.User {
	u.AssignedClasses = append([]string{}, u.AssignedClasses...)
	if u.DateOfBirth != nil {
		dob := *u.DateOfBirth
		u.DateOfBirth = &dob
	}
	return u
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *MemoryUserRepository) GetByIDs(_ context.Context, ids []string) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := []model.User{}
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := cloneUser(u)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) List(_ context.Context, f UserFilter) ([]model.User, int, error) {
	r.s.mu.RLock()
	matches := []model.User{}
	needle := strings.ToLower(f.Search)
	for _, u := range r.s.users {
		if u.Role == f.Role && strings.Contains(strings.ToLower(u.Name), needle) {
			matches = append(matches, cloneUser(u))
		}
	}
	r.s.mu.RUnlock()

	less := userLess(f.SortBy)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := &matches[i], &matches[j]
		if f.Order == model.SortDesc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return matches[i].ID < matches[j].ID
	})

	return paginate(matches, f.Offset(), f.Limit), len(matches), nil
}

func userLess(sortBy string) func(a, b *model.User) bool {
	switch sortBy {
	case "email":
		return func(a, b *model.User) bool { return a.Email < b.Email }
	case "createdAt":
		return func(a, b *model.User) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "salary":
		return func(a, b *model.User) bool { return a.Salary < b.Salary }
	case "feesPaid":
		return func(a, b *model.User) bool { return a.FeesPaid < b.FeesPaid }
	default:
		return func(a, b *model.User) bool { return a.Name < b.Name }
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}

	now := timeNow()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.AssignedClasses == nil {
		u.AssignedClasses = []string{}
	}
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[u.ID]
	if !ok {
		return ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}

	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = timeNow()
	r.s.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.users, id)

	// Mirror ON DELETE SET NULL on classes.teacher_id.
	for cid, c := range r.s.classes {
		if c.TeacherID == id {
			c.TeacherID = ""
			r.s.classes[cid] = c
		}
	}
	return nil
}

func (r *MemoryUserRepository) SumSalary(_ context.Context) (float64, error) {
	return r.sum(model.RoleTeacher, func(u model.User) float64 { return u.Salary }), nil
}

func (r *MemoryUserRepository) SumFeesPaid(_ context.Context) (float64, error) {
	return r.sum(model.RoleStudent, func(u model.User) float64 { return u.FeesPaid }), nil
}

func (r *MemoryUserRepository) sum(role model.Role, field func(model.User) float64) float64 {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total float64
	for _, u := range r.s.users {
		if u.Role == role {
			total += field(u)
		}
	}
	return total
}

// MemoryClassRepository implements ClassRepository over a MemoryStore.
type MemoryClassRepository struct {
	s *MemoryStore
}

func cloneClass(c model.Class) model.Class {
	c.Students = append([]string{}, c.Students...)
	return c
}

func (r *MemoryClassRepository) GetByID(_ context.Context, id string) (*model.Class, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.classes[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneClass(c)
	return &out, nil
}

func (r *MemoryClassRepository) List(_ context.Context, p model.ListParams) ([]model.Class, int, error) {
	r.s.mu.RLock()
	matches := []model.Class{}
	needle := strings.ToLower(p.Search)
	for _, c := range r.s.classes {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			matches = append(matches, cloneClass(c))
		}
	}
	r.s.mu.RUnlock()

	less := classLess(p.SortBy)
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := &matches[i], &matches[j]
		if p.Order == model.SortDesc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return matches[i].ID < matches[j].ID
	})

	return paginate(matches, p.Offset(), p.Limit), len(matches), nil
}

func classLess(sortBy string) func(a, b *model.Class) bool {
	switch sortBy {
	case "fee":
		return func(a, b *model.Class) bool { return a.Fee < b.Fee }
	case "maxStudents":
		return func(a, b *model.Class) bool { return a.MaxStudents < b.MaxStudents }
	case "createdAt":
		return func(a, b *model.Class) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return func(a, b *model.Class) bool { return a.Name < b.Name }
	}
}

func (r *MemoryClassRepository) Create(_ context.Context, c *model.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := timeNow()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Students == nil {
		c.Students = []string{}
	}
	r.s.classes[c.ID] = cloneClass(*c)
	return nil
}

func (r *MemoryClassRepository) Update(_ context.Context, c *model.Class) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.classes[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = stored.CreatedAt
	c.UpdatedAt = timeNow()
	r.s.classes[c.ID] = cloneClass(*c)
	return nil
}

func (r *MemoryClassRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.classes[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.classes, id)
	return nil
}

func (r *MemoryClassRepository) SumFees(_ context.Context) (float64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var total float64
	for _, c := range r.s.classes {
		total += c.Fee
	}
	return total, nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}

var (
	_ UserRepository  = (*MemoryUserRepository)(nil)
	_ ClassRepository = (*MemoryClassRepository)(nil)
)
