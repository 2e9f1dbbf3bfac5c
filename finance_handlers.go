package main

import (
	"fmt"
	"math"
	"net/http"

	"nexafin/models"
	"nexafin/pkg/planner"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// requireJobProfile loads the caller's profile and enforces the job category.
// Writes the error response itself and returns nil when the check fails.
func requireJobProfile(c *gin.Context, user *models.User) *models.FinancialProfile {
	var profile models.FinancialProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User profile data not found"})
		return nil
	}
	if profile.UserType != planner.UserTypeJob {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Available for job users only"})
		return nil
	}
	return &profile
}

func jobPlanHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	profile := requireJobProfile(c, user)
	if profile == nil {
		return
	}
	risk := profile.RiskTolerance
	if risk == "" {
		risk = planner.RiskModerate
	}
	c.JSON(http.StatusOK, planner.JobPlan(profile.Income, profile.Expenses, risk))
}

func jobRecommendationsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	profile := requireJobProfile(c, user)
	if profile == nil {
		return
	}
	in := planner.ProfileInput{
		Income:         profile.Income,
		Expenses:       profile.Expenses,
		CurrentSavings: profile.CurrentSavings,
		RiskTolerance:  profile.RiskTolerance,
	}
	rec := planner.Recommend(in)
	conf := planner.ScoreConfidence(in, rec)
	c.JSON(http.StatusOK, gin.H{
		"monthly_disposable":        rec.MonthlyDisposable,
		"recommended_investment":    rec.RecommendedInvestment,
		"recommended_savings":       rec.RecommendedSavings,
		"emergency_fund_allocation": rec.EmergencyFundAllocation,
		"message":                   rec.Message,
		"invest_confidence":         conf.Invest,
		"savings_confidence":        conf.Savings,
		"emergency_confidence":      conf.Emergency,
		"confidence_score":          conf.Overall,
	})
}

// financeSummaryHandler returns the dashboard summary: net worth is a simple
// savings + portfolio approximation.
func financeSummaryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var profile models.FinancialProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "User data not found"})
		return
	}
	portfolioValue := 0.0
	var portfolio models.Portfolio
	if err := db.Where("user_id = ?", user.ID).First(&portfolio).Error; err == nil {
		portfolioValue = portfolio.MonthlyInvestment
	}

	monthly := profile.MonthlyInvestment
	if monthly <= 0 {
		if profile.AIInvestmentAmount != nil {
			monthly = *profile.AIInvestmentAmount
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"monthly_income":     profile.Income,
		"monthly_expenses":   profile.Expenses,
		"current_savings":    profile.CurrentSavings,
		"portfolio_value":    portfolioValue,
		"net_worth":          profile.CurrentSavings + portfolioValue,
		"monthly_investment": monthly,
	})
}

// validateAmounts rejects NaN or negative values before any write. Order is
// not guaranteed by the map, but each message names its field.
func validateAmounts(fields map[string]float64) error {
	for key, value := range fields {
		if math.IsNaN(value) {
			return fmt.Errorf("Invalid value for %s", key)
		}
		if value < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	return nil
}

func updatePersonalFinanceHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		MonthlyIncome     float64 `json:"monthly_income"`
		MonthlyExpenses   float64 `json:"monthly_expenses"`
		CurrentSavings    float64 `json:"current_savings"`
		MonthlyInvestment float64 `json:"monthly_investment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if err := validateAmounts(map[string]float64{
		"monthly_income":     req.MonthlyIncome,
		"monthly_expenses":   req.MonthlyExpenses,
		"current_savings":    req.CurrentSavings,
		"monthly_investment": req.MonthlyInvestment,
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var profile *models.FinancialProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		profile, txErr = getOrCreateProfile(tx, user.ID)
		if txErr != nil {
			return txErr
		}
		profile.Income = req.MonthlyIncome
		profile.Expenses = req.MonthlyExpenses
		profile.CurrentSavings = req.CurrentSavings
		profile.MonthlyInvestment = req.MonthlyInvestment
		return tx.Save(profile).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}

	portfolioValue := 0.0
	var portfolio models.Portfolio
	if err := db.Where("user_id = ?", user.ID).First(&portfolio).Error; err == nil {
		portfolioValue = portfolio.MonthlyInvestment
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"monthly_income":     profile.Income,
			"monthly_expenses":   profile.Expenses,
			"current_savings":    profile.CurrentSavings,
			"monthly_investment": profile.MonthlyInvestment,
			"portfolio_value":    portfolioValue,
			"net_worth":          profile.CurrentSavings + portfolioValue,
		},
	})
}

func getTreasuryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var profile models.FinancialProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "User data not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cash_balance":     profile.CashBalance,
		"annual_revenue":   profile.Revenue,
		"monthly_expenses": profile.Expenses,
		"debt":             profile.Debt,
		"other_assets":     profile.OtherAssets,
	})
}

func updateTreasuryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		CashBalance     float64 `json:"cash_balance"`
		AnnualRevenue   float64 `json:"annual_revenue"`
		MonthlyExpenses float64 `json:"monthly_expenses"`
		Debt            float64 `json:"debt"`
		OtherAssets     float64 `json:"other_assets"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if err := validateAmounts(map[string]float64{
		"cash_balance":     req.CashBalance,
		"annual_revenue":   req.AnnualRevenue,
		"monthly_expenses": req.MonthlyExpenses,
		"debt":             req.Debt,
		"other_assets":     req.OtherAssets,
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var profile *models.FinancialProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		profile, txErr = getOrCreateProfile(tx, user.ID)
		if txErr != nil {
			return txErr
		}
		profile.CashBalance = req.CashBalance
		profile.Revenue = req.AnnualRevenue
		profile.Expenses = req.MonthlyExpenses
		profile.Debt = req.Debt
		profile.OtherAssets = req.OtherAssets
		return tx.Save(profile).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"cash_balance":     profile.CashBalance,
			"annual_revenue":   profile.Revenue,
			"monthly_expenses": profile.Expenses,
			"debt":             profile.Debt,
			"other_assets":     profile.OtherAssets,
		},
	})
}
