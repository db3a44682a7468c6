package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/response"
)

// ErrorHandler turns errors pushed with c.Error into a generic 500 when the
// handler has not written a response itself. Details are only logged.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		log.Error().
			Err(c.Errors.Last().Err).
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")

		if !c.Writer.Written() {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
	}
}

// Recovery converts a panic into the same 500 response.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error().
			Interface("panic", recovered).
			Str("request_id", response.RequestID(c)).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
	})
}
