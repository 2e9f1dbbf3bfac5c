package main

import (
	"encoding/json"
	"errors"
	"log"

	"nexafin/models"
	"nexafin/pkg/planner"

	"gorm.io/gorm"
)

// profileUpdatePayload is the public profile-update vocabulary, which differs
// from the persisted column names (monthly_income vs income, annual_revenue vs
// revenue, ...). Keys outside this set are dropped during JSON decoding, so
// unknown or legacy client fields are a no-op by construction.
type profileUpdatePayload struct {
	UserType          *string  `json:"user_type"`
	MonthlyIncome     *float64 `json:"monthly_income"`
	MonthlyExpenses   *float64 `json:"monthly_expenses"`
	AnnualRevenue     *float64 `json:"annual_revenue"`
	EmployeeCount     *int     `json:"employee_count"`
	AnnualBudget      *float64 `json:"annual_budget"`
	MarketDescription *string  `json:"market_description"`
	CurrentSavings    *float64 `json:"current_savings"`
	RiskTolerance     *string  `json:"risk_tolerance"`
	InvestmentGoal    *string  `json:"investment_goal"`

	// Retired fields, still accepted on the wire for old clients but never
	// applied. monthly_investment replaced both.
	InvestmentOverride *float64 `json:"investment_override"`
	InvestmentAmount   *float64 `json:"investment_amount"`

	AIInvestmentAmount *float64 `json:"ai_investment_amount"`
	MonthlyInvestment  *float64 `json:"monthly_investment"`

	CashBalance  *float64 `json:"cash_balance"`
	RunwayMonths *float64 `json:"runway_months"`
	Debt         *float64 `json:"debt"`
	OtherAssets  *float64 `json:"other_assets"`

	GSTNumber     *string `json:"gst_number"`
	AadhaarNumber *string `json:"aadhaar_number"`
}

// applyProfileFields copies the set fields of the payload onto the profile
// through an explicit mapping. The retired override fields are skipped.
func applyProfileFields(p *models.FinancialProfile, upd profileUpdatePayload) {
	if upd.UserType != nil {
		p.UserType = *upd.UserType
	}
	if upd.MonthlyIncome != nil {
		p.Income = *upd.MonthlyIncome
	}
	if upd.MonthlyExpenses != nil {
		p.Expenses = *upd.MonthlyExpenses
	}
	if upd.AnnualRevenue != nil {
		p.Revenue = *upd.AnnualRevenue
	}
	if upd.EmployeeCount != nil {
		p.Employees = *upd.EmployeeCount
	}
	if upd.AnnualBudget != nil {
		p.Budget = *upd.AnnualBudget
	}
	if upd.MarketDescription != nil {
		p.MarketText = *upd.MarketDescription
	}
	if upd.CurrentSavings != nil {
		p.CurrentSavings = *upd.CurrentSavings
	}
	if upd.RiskTolerance != nil {
		p.RiskTolerance = *upd.RiskTolerance
	}
	if upd.InvestmentGoal != nil {
		p.InvestmentGoal = *upd.InvestmentGoal
	}
	if upd.AIInvestmentAmount != nil {
		p.AIInvestmentAmount = upd.AIInvestmentAmount
	}
	if upd.MonthlyInvestment != nil {
		p.MonthlyInvestment = *upd.MonthlyInvestment
	}
	if upd.CashBalance != nil {
		p.CashBalance = *upd.CashBalance
	}
	if upd.RunwayMonths != nil {
		p.RunwayMonths = *upd.RunwayMonths
	}
	if upd.Debt != nil {
		p.Debt = *upd.Debt
	}
	if upd.OtherAssets != nil {
		p.OtherAssets = *upd.OtherAssets
	}
	if upd.GSTNumber != nil {
		p.GSTNumber = *upd.GSTNumber
	}
	if upd.AadhaarNumber != nil {
		p.AadhaarNumber = *upd.AadhaarNumber
	}
}

// getOrCreateProfile loads the user's profile, creating an empty one on first
// access.
func getOrCreateProfile(tx *gorm.DB, userID string) (*models.FinancialProfile, error) {
	var p models.FinancialProfile
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.FinancialProfile{
			UserID:         userID,
			RiskTolerance:  planner.RiskModerate,
			InvestmentGoal: "wealth_growth",
		}
		err = tx.Create(&p).Error
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// applyProfileUpdate persists a profile mutation and re-derives the user's
// portfolio where the rules call for it. Plan or portfolio failures are logged
// and absorbed; they never fail the profile write itself.
func applyProfileUpdate(tx *gorm.DB, user *models.User, upd profileUpdatePayload) (*models.FinancialProfile, bool, error) {
	profile, err := getOrCreateProfile(tx, user.ID)
	if err != nil {
		return nil, false, err
	}
	applyProfileFields(profile, upd)
	if err := tx.Save(profile).Error; err != nil {
		return nil, false, err
	}
	regenerated := regenerateForProfile(tx, user, profile)
	return profile, regenerated, nil
}

// regenerateForProfile applies the per-category portfolio rules. Returns
// whether the portfolio was regenerated.
func regenerateForProfile(tx *gorm.DB, user *models.User, profile *models.FinancialProfile) bool {
	switch profile.UserType {
	case planner.UserTypeJob:
		amount := resolveMonthlyInvestment(tx, profile)
		if amount <= 0 {
			// No resolvable amount: leave any prior portfolio untouched.
			return false
		}
		alloc := planner.GeneratePortfolio(amount, profile.RiskTolerance, planner.UserTypeJob)
		if err := upsertPortfolio(tx, user.ID, amount, alloc); err != nil {
			log.Printf("portfolio generation failed for %s: %v", user.Email, err)
			return false
		}
		return true

	case planner.UserTypeStartup:
		if profile.Budget <= 0 {
			return false
		}
		// Investable capital is 30% of the annual budget; startup portfolios
		// are always generated at high risk regardless of the stored tier.
		amount := profile.Budget * 0.3
		alloc := planner.GeneratePortfolio(amount, planner.RiskHigh, planner.UserTypeStartup)
		if err := upsertPortfolio(tx, user.ID, amount, alloc); err != nil {
			log.Printf("startup portfolio generation failed for %s: %v", user.Email, err)
			return false
		}
		return true
	}
	return false
}

// resolveMonthlyInvestment applies the amount precedence: an explicit positive
// user amount wins, then the stored AI suggestion, then a fresh recommendation
// when income allows (persisted back as the new AI suggestion).
func resolveMonthlyInvestment(tx *gorm.DB, profile *models.FinancialProfile) float64 {
	if profile.MonthlyInvestment > 0 {
		return profile.MonthlyInvestment
	}
	if profile.AIInvestmentAmount != nil && *profile.AIInvestmentAmount > 0 {
		return *profile.AIInvestmentAmount
	}
	if profile.Income > 0 {
		rec := planner.Recommend(planner.ProfileInput{
			Income:         profile.Income,
			Expenses:       profile.Expenses,
			CurrentSavings: profile.CurrentSavings,
			RiskTolerance:  profile.RiskTolerance,
		})
		amount := rec.RecommendedInvestment
		if amount > 0 {
			profile.AIInvestmentAmount = &amount
			if err := tx.Save(profile).Error; err != nil {
				log.Printf("failed to persist ai investment amount for profile %s: %v", profile.ID, err)
			}
		}
		return amount
	}
	return 0
}

// upsertPortfolio replaces the user's single portfolio row: amount and the
// full allocation change together.
func upsertPortfolio(tx *gorm.DB, userID string, amount float64, alloc []planner.Allocation) error {
	raw, err := json.Marshal(alloc)
	if err != nil {
		return err
	}
	var p models.Portfolio
	err = tx.Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		p.MonthlyInvestment = amount
		p.AllocationJSON = string(raw)
		return tx.Save(&p).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		p = models.Portfolio{UserID: userID, MonthlyInvestment: amount, AllocationJSON: string(raw)}
		return tx.Create(&p).Error
	default:
		return err
	}
}
