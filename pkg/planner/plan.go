package planner

import "fmt"

// Plan is the income-share financial plan shown on the job dashboard. Unlike
// Recommendation it works off gross income, not disposable income.
type Plan struct {
	MonthlyIncome            float64 `json:"monthly_income"`
	MonthlyExpenses          float64 `json:"monthly_expenses"`
	RecommendedSavings       float64 `json:"recommended_savings"`
	RecommendedInvestment    float64 `json:"recommended_investment"`
	RecommendedEmergencyFund float64 `json:"recommended_emergency_fund"`
	Message                  string  `json:"message"`
}

// JobPlan allocates income shares by risk tier: 20% savings / 15% investment
// at moderate risk, shifted toward safety (30/5) for low risk and toward
// growth (10/25) for high risk. The emergency share is a flat 5%.
// Negative inputs are clamped to zero.
func JobPlan(income, expenses float64, riskTolerance string) Plan {
	if income < 0 {
		income = 0
	}
	if expenses < 0 {
		expenses = 0
	}

	investAlloc := 0.15
	savingsAlloc := 0.20
	switch riskTolerance {
	case RiskLow:
		investAlloc = 0.05
		savingsAlloc = 0.30
	case RiskHigh:
		investAlloc = 0.25
		savingsAlloc = 0.10
	}

	savings := round2(income * savingsAlloc)
	invest := round2(income * investAlloc)
	emergency := round2(income * 0.05)

	message := fmt.Sprintf(
		"Based on your $%.2f income and '%s' risk profile, we recommend a focused strategy. "+
			"Allocate %.0f%% ($%.2f) to savings/bonds on safety, and %.0f%% ($%.2f) to growth investments. "+
			"Maintain a steady 5%% ($%.2f) allocation for emergencies.",
		income, riskTolerance, savingsAlloc*100, savings, investAlloc*100, invest, emergency)

	return Plan{
		MonthlyIncome:            income,
		MonthlyExpenses:          expenses,
		RecommendedSavings:       savings,
		RecommendedInvestment:    invest,
		RecommendedEmergencyFund: emergency,
		Message:                  message,
	}
}
