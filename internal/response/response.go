package response

import (
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the body of every error response. Message is always set.
type ErrorBody struct {
	Message   string            `json:"message"`
	Code      ErrCode           `json:"code,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// MessageBody is the body of acknowledgement responses such as deletes.
type MessageBody struct {
	Message string `json:"message"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// Success sends data as the JSON body.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message sends {message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

// Fail sends an error response with the code's default message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, errorBody(c, code, GetMessage(code), nil))
}

// FailMessage sends an error response with a message overriding the default.
func FailMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.JSON(statusCode, errorBody(c, code, message, nil))
}

// FailWithFields sends a validation error. The message lists every field error
// so clients that only surface message still show something actionable.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, errorBody(c, code, joinFields(fields), fields))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, errorBody(c, code, GetMessage(code), nil))
}

// AbortFailMessage aborts the chain with a custom message.
func AbortFailMessage(c *gin.Context, statusCode int, code ErrCode, message string) {
	c.AbortWithStatusJSON(statusCode, errorBody(c, code, message, nil))
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func errorBody(c *gin.Context, code ErrCode, message string, fields map[string]string) ErrorBody {
	return ErrorBody{
		Message:   message,
		Code:      code,
		Fields:    fields,
		RequestID: RequestID(c),
	}
}

func joinFields(fields map[string]string) string {
	if len(fields) == 0 {
		return GetMessage(ErrValidation)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return strings.Join(msgs, "; ")
}
