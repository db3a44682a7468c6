package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrNoSession          ErrCode = "NO_SESSION"
	ErrNotAuthorized      ErrCode = "NOT_AUTHORIZED"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrLogoutFailed       ErrCode = "LOGOUT_FAILED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidRole    ErrCode = "INVALID_ROLE"
	ErrInvalidTeacher ErrCode = "INVALID_TEACHER"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound    ErrCode = "NOT_FOUND"
	ErrEmailExists ErrCode = "EMAIL_EXISTS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the client-facing message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrNoSession:
		return "Not authorized, no session"
	case ErrNotAuthorized:
		return "Not authorized"
	case ErrInvalidCredentials:
		return "Invalid credentials"
	case ErrLogoutFailed:
		return "Could not log out. Please try again."

	case ErrForbidden:
		return "Not authorized to access this route"

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "Invalid request payload"
	case ErrInvalidRole:
		return "Role must be teacher or student"
	case ErrInvalidTeacher:
		return "Invalid Teacher ID"

	case ErrNotFound:
		return "Resource not found"
	case ErrEmailExists:
		return "Email already exists"

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "Internal server error"
	default:
		return "An unexpected error occurred"
	}
}
