package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolcrm-backend/internal/response"
	"github.com/stemsi/schoolcrm-backend/internal/service"
	"github.com/stemsi/schoolcrm-backend/internal/validator"
)

// ClassHandler handles class management (CRUD).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ClassRequest is the payload for creating or updating a class. On create,
// name and teacherId are required; on update every field is optional.
type ClassRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TeacherID   string   `json:"teacherId"`
	MaxStudents int      `json:"maxStudents" binding:"gte=0"`
	Students    []string `json:"students"`
	Fee         float64  `json:"fee" binding:"gte=0"`
}

func (h *ClassHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.FailMessage(c, http.StatusNotFound, response.ErrNotFound, "Class not found")
	case errors.Is(err, service.ErrInvalidTeacher):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidTeacher)
	default:
		_ = c.Error(err)
	}
}

// CreateClass godoc
// POST /api/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if req.Name == "" || req.TeacherID == "" {
		response.FailMessage(c, http.StatusBadRequest, response.ErrValidation, "Name and Teacher ID are required")
		return
	}

	class, err := h.classService.Create(c.Request.Context(), service.ClassInput{
		Name:        req.Name,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		MaxStudents: req.MaxStudents,
		Students:    req.Students,
		Fee:         req.Fee,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, class)
}

// ListClasses godoc
// GET /api/classes?page=&limit=&search=&sortBy=&order=
func (h *ClassHandler) ListClasses(c *gin.Context) {
	page, err := h.classService.List(c.Request.Context(), listParams(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetClass godoc
// GET /api/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	class, err := h.classService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

// UpdateClass godoc
// PUT /api/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	var req ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), c.Param("id"), service.ClassPatch{
		Name:        req.Name,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		MaxStudents: req.MaxStudents,
		Students:    req.Students,
		Fee:         req.Fee,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, class)
}

// DeleteClass godoc
// DELETE /api/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	if err := h.classService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Class removed")
}
