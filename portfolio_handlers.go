package main

import (
	"encoding/json"
	"net/http"

	"nexafin/models"
	"nexafin/pkg/planner"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func getPortfolioHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var portfolio models.Portfolio
	if err := db.Where("user_id = ?", user.ID).First(&portfolio).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": errPortfolioNotFound.Error()})
		return
	}
	var alloc []planner.Allocation
	if err := json.Unmarshal([]byte(portfolio.AllocationJSON), &alloc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored allocation is corrupt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"monthly_investment": portfolio.MonthlyInvestment,
		"allocation":         alloc,
	})
}

// generatePortfolioHandler regenerates the portfolio for an explicit amount,
// bypassing the orchestrator's precedence rules. Risk tolerance and category
// still come from the stored profile.
func generatePortfolioHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "amount must be >= 0"})
		return
	}
	var profile models.FinancialProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "User profile not completed"})
		return
	}
	risk := profile.RiskTolerance
	if risk == "" {
		risk = planner.RiskModerate
	}
	userType := profile.UserType
	if userType == "" {
		userType = planner.UserTypeJob
	}

	alloc := planner.GeneratePortfolio(req.Amount, risk, userType)
	err := db.Transaction(func(tx *gorm.DB) error {
		return upsertPortfolio(tx, user.ID, req.Amount, alloc)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "portfolio save failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Portfolio generated successfully",
		"allocation": alloc,
	})
}
