// Package planner derives financial plans and asset allocations from a user's
// income and risk profile. Everything here is a pure function of its inputs;
// persistence and precedence rules live with the callers.
package planner

import "github.com/shopspring/decimal"

// Risk tiers. Unrecognized values are treated as moderate throughout.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// User categories.
const (
	UserTypeJob     = "job"
	UserTypeStartup = "startup"
)

// Market outlook values for confidence scoring.
const (
	OutlookBearish = "bearish"
	OutlookNeutral = "neutral"
	OutlookBullish = "bullish"
)

// ProfileInput is the explicit value type every caller constructs; there is no
// duck typing against stored rows.
type ProfileInput struct {
	Income         float64
	Expenses       float64
	CurrentSavings float64
	RiskTolerance  string // low | moderate | high
	MarketOutlook  string // bearish | neutral | bullish; empty means neutral
}

// riskMultiplier scales the investment share only. Savings and emergency
// shares are unaffected by risk tier.
func riskMultiplier(riskTolerance string) float64 {
	switch riskTolerance {
	case RiskLow:
		return 0.6
	case RiskHigh:
		return 1.4
	default:
		return 1.0
	}
}

// round2 rounds a monetary value to 2 decimal places.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
