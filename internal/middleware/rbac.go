package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/policy"
	"github.com/stemsi/schoolcrm-backend/internal/response"
)

// Authorize admits only users whose role is in roles. It must run after Protect.
func Authorize(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		if !policy.Allows(roles, user.Role) {
			response.AbortFailMessage(c, http.StatusForbidden, response.ErrForbidden,
				fmt.Sprintf("User role '%s' is not authorized to access this route", user.Role))
			return
		}

		c.Next()
	}
}

// AuthorizeRoute looks up the allowed roles for a registered route.
func AuthorizeRoute(method, path string) gin.HandlerFunc {
	return Authorize(policy.RolesFor(method, path)...)
}
