package model

import "time"

const (
	DefaultMaxStudents = 60
	DefaultClassFee    = 1000
)

// Class is a teaching unit. MaxStudents is informational and not enforced
// against len(Students).
type Class struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TeacherID   string    `json:"teacherId"`
	MaxStudents int       `json:"maxStudents"`
	Students    []string  `json:"students"`
	Fee         float64   `json:"fee"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ClassView is a class with its teacher's name and email inlined at read time.
// Teacher is nil when the referenced user no longer exists.
type ClassView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Teacher     *UserRef  `json:"teacher"`
	MaxStudents int       `json:"maxStudents"`
	Students    []string  `json:"students"`
	Fee         float64   `json:"fee"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// View composes a ClassView from the class and its resolved teacher.
func (c *Class) View(teacher *User) ClassView {
	v := ClassView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		MaxStudents: c.MaxStudents,
		Students:    c.Students,
		Fee:         c.Fee,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if v.Students == nil {
		v.Students = []string{}
	}
	if teacher != nil {
		v.Teacher = &UserRef{ID: teacher.ID, Name: teacher.Name, Email: teacher.Email}
	}
	return v
}
