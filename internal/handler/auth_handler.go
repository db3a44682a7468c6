package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/middleware"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/response"
	"github.com/stemsi/schoolcrm-backend/internal/service"
	"github.com/stemsi/schoolcrm-backend/internal/validator"
)

// CookieSettings controls the session cookie.
type CookieSettings struct {
	Name     string
	SameSite http.SameSite
	Secure   bool
}

// AuthHandler handles signup, login, logout and the current-user profile.
type AuthHandler struct {
	authService *service.AuthService
	cookie      CookieSettings
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, cookie CookieSettings, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// SignupRequest is the payload for self-service account creation.
type SignupRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required,schoolemail"`
	Password      string  `json:"password" binding:"required,min=6"`
	Role          string  `json:"role"`
	Gender        string  `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DateOfBirth   string  `json:"dateOfBirth"`
	ContactNumber string  `json:"contactNumber"`
	Salary        float64 `json:"salary" binding:"gte=0"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// POST /api/auth/signup
// Creates a teacher or student account and logs it in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	dob, ok := parseDate(req.DateOfBirth)
	if !ok {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"dateOfBirth": "dateOfBirth must be a valid date"})
		return
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleStudent
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          role,
		Gender:        model.Gender(req.Gender),
		DateOfBirth:   dob,
		ContactNumber: req.ContactNumber,
		Salary:        req.Salary,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
		case errors.Is(err, service.ErrEmailExists):
			response.Fail(c, http.StatusBadRequest, response.ErrEmailExists)
		default:
			_ = c.Error(err)
		}
		return
	}

	if !h.startSession(c, user) {
		return
	}
	response.Success(c, http.StatusCreated, user.Public())
}

// Login godoc
// POST /api/auth/login
// Verifies credentials and issues a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		_ = c.Error(err)
		return
	}

	if !h.startSession(c, user) {
		return
	}
	response.Success(c, http.StatusOK, user.Public())
}

// Logout godoc
// POST /api/auth/logout
// Destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)

	if err := h.authService.EndSession(c.Request.Context(), token); err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Failed to destroy session")
		response.Fail(c, http.StatusInternalServerError, response.ErrLogoutFailed)
		return
	}

	h.clearCookie(c)
	response.Message(c, http.StatusOK, "Logged out successfully")
}

// Me godoc
// GET /api/auth/me
// Returns the public profile of the session user.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrNoSession)
		return
	}
	response.Success(c, http.StatusOK, user.Public())
}

// startSession rotates any session already carried by the request and sets
// a fresh cookie. It writes the error response itself and reports success.
func (h *AuthHandler) startSession(c *gin.Context, user *model.User) bool {
	ctx := c.Request.Context()

	if old, err := c.Cookie(h.cookie.Name); err == nil && old != "" {
		if err := h.authService.EndSession(ctx, old); err != nil {
			h.log.Warn().Err(err).Msg("Failed to drop previous session")
		}
	}

	token, err := h.authService.StartSession(ctx, user)
	if err != nil {
		_ = c.Error(err)
		return false
	}

	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, token, int(h.authService.SessionTTL().Seconds()), "/", "", h.cookie.Secure, true)
	return true
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}
