package model

import "time"

// Role determines the set of routes a user may act through.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Gender is optional profile information.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// User is the identity and role record shared by admins, teachers and students.
type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Password        string     `json:"-"`
	Role            Role       `json:"role"`
	Gender          Gender     `json:"gender,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	ContactNumber   string     `json:"contactNumber,omitempty"`
	AssignedClasses []string   `json:"assignedClasses"`
	Salary          float64    `json:"salary"`
	FeesPaid        float64    `json:"feesPaid"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// PublicUser is the client-safe projection of a User. Salary is only shown
// for teachers and feesPaid only for students.
type PublicUser struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            Role       `json:"role"`
	Gender          Gender     `json:"gender,omitempty"`
	DateOfBirth     *time.Time `json:"dateOfBirth,omitempty"`
	ContactNumber   string     `json:"contactNumber,omitempty"`
	AssignedClasses []string   `json:"assignedClasses"`
	Salary          *float64   `json:"salary,omitempty"`
	FeesPaid        *float64   `json:"feesPaid,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Public strips the password and the role-irrelevant money fields.
func (u *User) Public() PublicUser {
	p := PublicUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Gender:          u.Gender,
		DateOfBirth:     u.DateOfBirth,
		ContactNumber:   u.ContactNumber,
		AssignedClasses: u.AssignedClasses,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if p.AssignedClasses == nil {
		p.AssignedClasses = []string{}
	}
	switch u.Role {
	case RoleTeacher:
		salary := u.Salary
		p.Salary = &salary
	case RoleStudent:
		fees := u.FeesPaid
		p.FeesPaid = &fees
	}
	return p
}

// PublicUsers projects a slice of users.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}

// UserRef is the teacher summary inlined into class views.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
