// Package policy holds the route authorization matrix.
//
// Every protected route is declared once in Matrix with its allowed roles.
// The router looks its gate up here, so the matrix can be audited and tested
// without starting a server.
package policy

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/stemsi/schoolcrm-backend/internal/model"
)

// Route identifies an endpoint by method and gin path pattern.
type Route struct {
	Method string
	Path   string
}

func (r Route) String() string {
	return r.Method + " " + r.Path
}

// AnyRole marks routes that only need an authenticated identity.
var AnyRole = []model.Role{model.RoleAdmin, model.RoleTeacher, model.RoleStudent}

var (
	adminOnly    = []model.Role{model.RoleAdmin}
	adminTeacher = []model.Role{model.RoleAdmin, model.RoleTeacher}
)

// Matrix is the complete authorization table.
var Matrix = map[Route][]model.Role{
	{http.MethodPost, "/api/auth/logout"}: AnyRole,
	{http.MethodGet, "/api/auth/me"}:      AnyRole,

	{http.MethodPost, "/api/teachers"}:       adminOnly,
	{http.MethodGet, "/api/teachers"}:        adminTeacher,
	{http.MethodGet, "/api/teachers/:id"}:    adminTeacher,
	{http.MethodPut, "/api/teachers/:id"}:    adminOnly,
	{http.MethodDelete, "/api/teachers/:id"}: adminOnly,

	{http.MethodPost, "/api/students"}:       adminTeacher,
	{http.MethodGet, "/api/students"}:        adminTeacher,
	{http.MethodGet, "/api/students/:id"}:    adminTeacher,
	{http.MethodPut, "/api/students/:id"}:    adminTeacher,
	{http.MethodDelete, "/api/students/:id"}: adminOnly,

	{http.MethodPost, "/api/classes"}:       adminOnly,
	{http.MethodGet, "/api/classes"}:        AnyRole,
	{http.MethodGet, "/api/classes/:id"}:    AnyRole,
	{http.MethodPut, "/api/classes/:id"}:    adminOnly,
	{http.MethodDelete, "/api/classes/:id"}: adminOnly,

	{http.MethodGet, "/api/financial/analytics"}:                 adminOnly,
	{http.MethodGet, "/api/financial/expenses/teacher-salaries"}: adminOnly,
	{http.MethodGet, "/api/financial/income/student-fees"}:       adminOnly,
}

// RolesFor returns the allowed roles of a declared route. It panics on an
// undeclared route so a missing rule fails at startup, not at request time.
func RolesFor(method, path string) []model.Role {
	roles, ok := Matrix[Route{method, path}]
	if !ok {
		panic(fmt.Sprintf("policy: no rule for %s %s", method, path))
	}
	return roles
}

// Allows reports whether role is in allowed.
func Allows(allowed []model.Role, role model.Role) bool {
	return slices.Contains(allowed, role)
}
