package planner

import "fmt"

// Recommendation is the monthly plan derived from disposable income.
type Recommendation struct {
	MonthlyDisposable       float64 `json:"monthly_disposable"`
	RecommendedInvestment   float64 `json:"recommended_investment"`
	RecommendedSavings      float64 `json:"recommended_savings"`
	EmergencyFundAllocation float64 `json:"emergency_fund_allocation"`
	Message                 string  `json:"message"`
}

// Recommend splits disposable income 50/30/20 across investment, savings and
// emergency fund, then scales the investment share by the risk multiplier.
// Savings is deliberately NOT rebalanced when a low-risk tier shrinks the
// investment share; the unallocated remainder is left to the user.
// Negative inputs are clamped to zero, never rejected.
func Recommend(in ProfileInput) Recommendation {
	income := in.Income
	if income < 0 {
		income = 0
	}
	expenses := in.Expenses
	if expenses < 0 {
		expenses = 0
	}

	disposable := income - expenses
	if disposable < 0 {
		disposable = 0
	}

	baseInvest := disposable * 0.5
	baseSave := disposable * 0.3
	emergency := disposable * 0.2

	risk := in.RiskTolerance
	if risk == "" {
		risk = RiskModerate
	}
	invest := round2(baseInvest * riskMultiplier(risk))

	return Recommendation{
		MonthlyDisposable:       disposable,
		RecommendedInvestment:   invest,
		RecommendedSavings:      round2(baseSave),
		EmergencyFundAllocation: round2(emergency),
		Message: fmt.Sprintf("Based on your %s risk profile, we recommend investing $%.2f monthly.",
			risk, invest),
	}
}
