package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolcrm-backend/internal/response"
	"github.com/stemsi/schoolcrm-backend/internal/service"
)

// FinancialHandler serves the admin financial aggregates.
type FinancialHandler struct {
	financialService *service.FinancialService
}

// NewFinancialHandler creates a new FinancialHandler.
func NewFinancialHandler(financialService *service.FinancialService) *FinancialHandler {
	return &FinancialHandler{financialService: financialService}
}

// Analytics godoc
// GET /api/financial/analytics
func (h *FinancialHandler) Analytics(c *gin.Context) {
	summary, err := h.financialService.Analytics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": summary})
}

// TeacherSalaries godoc
// GET /api/financial/expenses/teacher-salaries
func (h *FinancialHandler) TeacherSalaries(c *gin.Context) {
	total, err := h.financialService.TeacherSalaryExpenses(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalExpenses": total})
}

// StudentFees godoc
// GET /api/financial/income/student-fees
func (h *FinancialHandler) StudentFees(c *gin.Context) {
	total, err := h.financialService.StudentFeeIncome(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalIncome": total})
}
