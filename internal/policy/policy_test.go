package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stemsi/schoolcrm-backend/internal/model"
)

func TestMatrix(t *testing.T) {
	tests := []struct {
		method string
		path   string
		role   model.Role
		want   bool
	}{
		{http.MethodPost, "/api/teachers", model.RoleAdmin, true},
		{http.MethodPost, "/api/teachers", model.RoleTeacher, false},
		{http.MethodGet, "/api/teachers", model.RoleTeacher, true},
		{http.MethodGet, "/api/teachers", model.RoleStudent, false},
		{http.MethodPost, "/api/students", model.RoleTeacher, true},
		{http.MethodPut, "/api/students/:id", model.RoleTeacher, true},
		{http.MethodDelete, "/api/students/:id", model.RoleTeacher, false},
		{http.MethodDelete, "/api/students/:id", model.RoleAdmin, true},
		{http.MethodGet, "/api/classes", model.RoleStudent, true},
		{http.MethodGet, "/api/classes/:id", model.RoleStudent, true},
		{http.MethodPost, "/api/classes", model.RoleTeacher, false},
		{http.MethodPut, "/api/classes/:id", model.RoleAdmin, true},
		{http.MethodGet, "/api/financial/analytics", model.RoleTeacher, false},
		{http.MethodGet, "/api/financial/analytics", model.RoleAdmin, true},
		{http.MethodPost, "/api/auth/logout", model.RoleStudent, true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" as "+string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(RolesFor(tt.method, tt.path), tt.role))
		})
	}
}

func TestEveryRuleNamesKnownRoles(t *testing.T) {
	for route, roles := range Matrix {
		assert.NotEmpty(t, roles, route.String())
		for _, r := range roles {
			assert.True(t, r.Valid(), "%s allows unknown role %q", route, r)
		}
	}
}

func TestFinancialRoutesAreAdminOnly(t *testing.T) {
	for route, roles := range Matrix {
		if len(route.Path) > len("/api/financial") && route.Path[:len("/api/financial")] == "/api/financial" {
			assert.Equal(t, []model.Role{model.RoleAdmin}, roles, route.String())
		}
	}
}

func TestRolesForPanicsOnUndeclaredRoute(t *testing.T) {
	assert.Panics(t, func() { RolesFor(http.MethodPatch, "/api/classes/:id") })
}

func TestAllowsUnknownRole(t *testing.T) {
	assert.False(t, Allows(AnyRole, model.Role("")))
}
