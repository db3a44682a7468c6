package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
	"github.com/stemsi/schoolcrm-backend/internal/response"
	"github.com/stemsi/schoolcrm-backend/internal/session"
)

const (
	// ContextKeyUser is the Gin context key for the authenticated user.
	ContextKeyUser = "user"
)

// SessionResolver maps a session cookie value to its live identity.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*session.Identity, error)
}

// UserFinder loads the user a session is bound to.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Protect requires a live session and attaches its user to the context.
// Every failure, including store faults, ends in 401.
func Protect(cookieName string, sessions SessionResolver, users UserFinder, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)

		identity, err := sessions.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Session lookup failed")
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNoSession)
			return
		}
		if identity.UserID == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNoSession)
			return
		}

		user, err := users.GetByID(c.Request.Context(), identity.UserID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Session user lookup failed")
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrNotAuthorized)
			return
		}
		user.Password = ""

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// GetUser retrieves the authenticated user from the Gin context.
func GetUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}
