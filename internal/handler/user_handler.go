package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/response"
	"github.com/stemsi/schoolcrm-backend/internal/service"
	"github.com/stemsi/schoolcrm-backend/internal/validator"
)

// UserHandler serves one role-scoped user resource, e.g. /api/teachers.
type UserHandler struct {
	userService *service.UserService
	label       string
}

// NewUserHandler creates a handler whose messages use label, e.g. "Teacher".
func NewUserHandler(userService *service.UserService, label string) *UserHandler {
	return &UserHandler{userService: userService, label: label}
}

// CreateUserRequest is the payload for adding a teacher or student. The role
// comes from the resource, never the body.
type CreateUserRequest struct {
	Name            string   `json:"name" binding:"required"`
	Email           string   `json:"email" binding:"required,schoolemail"`
	Password        string   `json:"password" binding:"required,min=6"`
	Gender          string   `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DateOfBirth     string   `json:"dateOfBirth"`
	ContactNumber   string   `json:"contactNumber"`
	AssignedClasses []string `json:"assignedClasses"`
	Salary          float64  `json:"salary" binding:"gte=0"`
	FeesPaid        float64  `json:"feesPaid" binding:"gte=0"`
}

// UpdateUserRequest is a replace-if-present patch. Empty and zero fields are
// ignored.
type UpdateUserRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email" binding:"omitempty,schoolemail"`
	Password        string   `json:"password" binding:"omitempty,min=6"`
	Gender          string   `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DateOfBirth     string   `json:"dateOfBirth"`
	ContactNumber   string   `json:"contactNumber"`
	AssignedClasses []string `json:"assignedClasses"`
	Salary          float64  `json:"salary" binding:"gte=0"`
	FeesPaid        float64  `json:"feesPaid" binding:"gte=0"`
}

func (h *UserHandler) notFound(c *gin.Context) {
	response.FailMessage(c, http.StatusNotFound, response.ErrNotFound, h.label+" not found")
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		h.notFound(c)
	case errors.Is(err, service.ErrEmailExists):
		response.Fail(c, http.StatusBadRequest, response.ErrEmailExists)
	default:
		_ = c.Error(err)
	}
}

// Create godoc
// POST /api/{teachers|students}
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
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

	user, err := h.userService.Create(c.Request.Context(), service.UserInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Gender:          model.Gender(req.Gender),
		DateOfBirth:     dob,
		ContactNumber:   req.ContactNumber,
		AssignedClasses: req.AssignedClasses,
		Salary:          req.Salary,
		FeesPaid:        req.FeesPaid,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user.Public())
}

// List godoc
// GET /api/{teachers|students}?page=&limit=&search=&sortBy=&order=
func (h *UserHandler) List(c *gin.Context) {
	page, err := h.userService.List(c.Request.Context(), listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Get godoc
// GET /api/{teachers|students}/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user.Public())
}

// Update godoc
// PUT /api/{teachers|students}/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
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

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), service.UserPatch{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		Gender:          model.Gender(req.Gender),
		DateOfBirth:     dob,
		ContactNumber:   req.ContactNumber,
		AssignedClasses: req.AssignedClasses,
		Salary:          req.Salary,
		FeesPaid:        req.FeesPaid,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, user.Public())
}

// Delete godoc
// DELETE /api/{teachers|students}/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, h.label+" removed")
}
