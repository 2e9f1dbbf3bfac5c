package planner

import (
	"math"
	"math/rand"
)

// Confidence bounds. Scores are advisory metadata and never gate whether a
// plan is produced.
const (
	confidenceFloor = 55
	confidenceCeil  = 95
	confidenceBase  = 60
)

// Confidence carries a score per recommendation category plus the weighted
// overall score.
type Confidence struct {
	Invest    int `json:"invest_confidence"`
	Savings   int `json:"savings_confidence"`
	Emergency int `json:"emergency_confidence"`
	Overall   int `json:"confidence_score"`
}

// Nominal risk of each recommendation category: growth investments are high
// risk, savings vehicles moderate, the emergency fund low.
const (
	nominalRiskInvest    = RiskHigh
	nominalRiskSavings   = RiskModerate
	nominalRiskEmergency = RiskLow
)

// ScoreConfidence scores each category of a recommendation from five weighted
// signals plus a small symmetric jitter, clamped to [55, 95]. The overall
// score weights the categories 50/30/20.
func ScoreConfidence(in ProfileInput, rec Recommendation) Confidence {
	c := Confidence{
		Invest:    categoryScore(in, rec.RecommendedInvestment, nominalRiskInvest),
		Savings:   categoryScore(in, rec.RecommendedSavings, nominalRiskSavings),
		Emergency: categoryScore(in, rec.EmergencyFundAllocation, nominalRiskEmergency),
	}
	overall := 0.5*float64(c.Invest) + 0.3*float64(c.Savings) + 0.2*float64(c.Emergency)
	c.Overall = int(math.Round(overall))
	return c
}

func categoryScore(in ProfileInput, amount float64, nominalRisk string) int {
	score := confidenceBase

	// Positive cash flow
	if in.Income > in.Expenses {
		score += 10
	}

	// Savings-to-income ratio tiers
	if in.Income > 0 {
		ratio := in.CurrentSavings / in.Income
		switch {
		case ratio >= 0.5:
			score += 10
		case ratio >= 0.2:
			score += 5
		}
	}

	// Risk-tier match against the category's nominal risk
	risk := in.RiskTolerance
	if risk == "" {
		risk = RiskModerate
	}
	switch {
	case risk == nominalRisk:
		score += 15
	case nominalRisk == RiskModerate:
		score += 5
	default:
		score -= 5
	}

	// Allocation-size bonus
	switch {
	case amount >= 1000:
		score += 5
	case amount >= 250:
		score += 3
	}

	// Market outlook bonus
	switch in.MarketOutlook {
	case OutlookBearish:
		score += 5
	case OutlookBullish:
		score += 15
	default:
		score += 10
	}

	// Symmetric jitter in [-3, 3]
	score += rand.Intn(7) - 3

	if score < confidenceFloor {
		score = confidenceFloor
	}
	if score > confidenceCeil {
		score = confidenceCeil
	}
	return score
}
