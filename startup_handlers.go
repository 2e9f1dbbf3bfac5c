package main

import (
	"net/http"

	"nexafin/models"

	"github.com/gin-gonic/gin"
)

func createStartupHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name          string  `json:"name" binding:"required"`
		Description   string  `json:"description"`
		Industry      string  `json:"industry"`
		Revenue       float64 `json:"revenue"`
		Burn          float64 `json:"burn"`
		Cash          float64 `json:"cash"`
		Growth        float64 `json:"growth"`
		Team          int     `json:"team"`
		Runway        int     `json:"runway"`
		SurvivalScore int     `json:"survival_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	startup := models.Startup{
		Name:          req.Name,
		Description:   req.Description,
		CreatorEmail:  user.Email,
		Industry:      req.Industry,
		Revenue:       req.Revenue,
		Burn:          req.Burn,
		Cash:          req.Cash,
		Growth:        req.Growth,
		Team:          req.Team,
		Runway:        req.Runway,
		SurvivalScore: req.SurvivalScore,
	}
	if err := db.Create(&startup).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, startup)
}

func listMyStartupsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var startups []models.Startup
	if err := db.Where("creator_email = ?", user.Email).
		Order("created_at desc").Find(&startups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, startups)
}
