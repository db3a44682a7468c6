package service

import (
	"context"

	"github.com/stemsi/schoolcrm-backend/internal/model"
	"github.com/stemsi/schoolcrm-backend/internal/repository"
)

// FinancialService derives salary/fee aggregates. Nothing it returns is stored.
type FinancialService struct {
	users   repository.UserRepository
	classes repository.ClassRepository
}

// NewFinancialService creates a new FinancialService.
func NewFinancialService(users repository.UserRepository, classes repository.ClassRepository) *FinancialService {
	return &FinancialService{users: users, classes: classes}
}

// Analytics returns Σ teacher salary, Σ student fees paid, and their difference.
func (s *FinancialService) Analytics(ctx context.Context) (model.FinancialSummary, error) {
	salary, err := s.users.SumSalary(ctx)
	if err != nil {
		return model.FinancialSummary{}, err
	}
	fees, err := s.users.SumFeesPaid(ctx)
	if err != nil {
		return model.FinancialSummary{}, err
	}
	return model.NewFinancialSummary(salary, fees), nil
}

// TeacherSalaryExpenses is Σ salary over teachers.
func (s *FinancialService) TeacherSalaryExpenses(ctx context.Context) (float64, error) {
	return s.users.SumSalary(ctx)
}

// StudentFeeIncome is Σ fee over all classes.
func (s *FinancialService) StudentFeeIncome(ctx context.Context) (float64, error) {
	return s.classes.SumFees(ctx)
}
