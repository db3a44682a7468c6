package model

// FinancialSummary is derived on demand and never stored.
type FinancialSummary struct {
	Salary        float64 `json:"salary"`
	FeesCollected float64 `json:"feesCollected"`
	Profit        float64 `json:"profit"`
}

// NewFinancialSummary computes profit as fees collected minus salaries.
func NewFinancialSummary(totalSalary, feesCollected float64) FinancialSummary {
	return FinancialSummary{
		Salary:        totalSalary,
		FeesCollected: feesCollected,
		Profit:        feesCollected - totalSalary,
	}
}
