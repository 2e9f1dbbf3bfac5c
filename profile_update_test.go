package main

import (
	"encoding/json"
	"testing"

	"nexafin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func TestApplyProfileFieldsTranslation(t *testing.T) {
	var p models.FinancialProfile
	applyProfileFields(&p, profileUpdatePayload{
		UserType:          str("startup"),
		MonthlyIncome:     f64(5000),
		MonthlyExpenses:   f64(2000),
		AnnualRevenue:     f64(120000),
		AnnualBudget:      f64(100000),
		MarketDescription: str("fintech for SMEs"),
		RiskTolerance:     str("high"),
	})

	assert.Equal(t, "startup", p.UserType)
	assert.Equal(t, 5000.0, p.Income)
	assert.Equal(t, 2000.0, p.Expenses)
	assert.Equal(t, 120000.0, p.Revenue)
	assert.Equal(t, 100000.0, p.Budget)
	assert.Equal(t, "fintech for SMEs", p.MarketText)
	assert.Equal(t, "high", p.RiskTolerance)
}

func TestApplyProfileFieldsLeavesUnsetFieldsAlone(t *testing.T) {
	p := models.FinancialProfile{Income: 4000, RiskTolerance: "low"}
	applyProfileFields(&p, profileUpdatePayload{MonthlyExpenses: f64(900)})

	assert.Equal(t, 4000.0, p.Income)
	assert.Equal(t, "low", p.RiskTolerance)
	assert.Equal(t, 900.0, p.Expenses)
}

// The retired override fields are accepted on the wire but never applied.
func TestApplyProfileFieldsIgnoresRetiredFields(t *testing.T) {
	var p models.FinancialProfile
	applyProfileFields(&p, profileUpdatePayload{
		InvestmentOverride: f64(9999),
		InvestmentAmount:   f64(8888),
		MonthlyInvestment:  f64(500),
	})

	assert.Nil(t, p.InvestmentOverride)
	assert.Nil(t, p.InvestmentAmount)
	assert.Equal(t, 500.0, p.MonthlyInvestment)
}

func TestProfileUpdatePayloadDropsUnknownKeys(t *testing.T) {
	var upd profileUpdatePayload
	err := json.Unmarshal([]byte(`{"bogus_key": 42, "monthly_income": 3000}`), &upd)
	require.NoError(t, err)
	require.NotNil(t, upd.MonthlyIncome)
	assert.Equal(t, 3000.0, *upd.MonthlyIncome)
}
