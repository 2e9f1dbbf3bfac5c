package main

import (
	"net/http"
	"time"

	"nexafin/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/auth/signup", signupHandler)
	r.POST("/auth/login", loginHandler)

	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/auth/me", meHandler)
	authGroup.PUT("/auth/profile", updateProfileHandler)
	authGroup.PUT("/auth/update-investment", updateInvestmentHandler)

	authGroup.GET("/finance/job-plan", jobPlanHandler)
	authGroup.GET("/finance/me", financeSummaryHandler)
	authGroup.PUT("/finance/personal", updatePersonalFinanceHandler)
	authGroup.GET("/finance/treasury", getTreasuryHandler)
	authGroup.PUT("/finance/treasury", updateTreasuryHandler)

	authGroup.GET("/recommendations/job", jobRecommendationsHandler)

	authGroup.GET("/portfolio/me", getPortfolioHandler)
	authGroup.POST("/portfolio/generate", generatePortfolioHandler)

	authGroup.POST("/invest/connect", connectHandler)
	authGroup.GET("/invest/requests", listMyRequestsHandler)
	authGroup.POST("/invest/read/:id", markRequestReadHandler)
	authGroup.GET("/invest/startup/requests", listStartupRequestsHandler)
	authGroup.POST("/invest/startup/requests/update", updateRequestStatusHandler)

	authGroup.GET("/notifications", listNotificationsHandler)
	authGroup.POST("/notifications/read", markNotificationReadHandler)

	authGroup.POST("/startups", createStartupHandler)
	authGroup.GET("/startups/my", listMyStartupsHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		email, _ := claims["sub"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		c.Set("email", email)
		c.Next()
	}
}

// getUserFromContext fetches the authenticated user via the email claim set by
// jwtAuthMiddleware.
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	emailVal, _ := c.Get("email")
	if emailVal == nil {
		return nil, false
	}
	email := emailVal.(string)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func signupHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := RegisterUser(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.Email,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"email":        user.Email,
	})
}

func meHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var profile models.FinancialProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		user.Profile = &profile
	}
	c.JSON(http.StatusOK, user)
}

// updateProfileHandler is the profile-update orchestrator entry point: it
// persists the translated fields and auto-regenerates the portfolio. The
// profile write and portfolio upsert commit as one unit.
func updateProfileHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var upd profileUpdatePayload
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var profile *models.FinancialProfile
	var regenerated bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		profile, regenerated, txErr = applyProfileUpdate(tx, user, upd)
		return txErr
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	user.Profile = profile
	c.JSON(http.StatusOK, gin.H{
		"id":                    user.ID,
		"email":                 user.Email,
		"data":                  profile,
		"portfolio_regenerated": regenerated,
	})
}

// updateInvestmentHandler sets the explicit monthly investment directly and
// keeps an existing portfolio's amount in sync with it.
func updateInvestmentHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		MonthlyInvestment float64 `json:"monthly_investment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var profile models.FinancialProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errProfileNotFound.Error()})
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&profile).Update("monthly_investment", req.MonthlyInvestment).Error; err != nil {
			return err
		}
		var portfolio models.Portfolio
		if err := tx.Where("user_id = ?", user.ID).First(&portfolio).Error; err == nil {
			return tx.Model(&portfolio).Update("monthly_investment", req.MonthlyInvestment).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "monthly_investment": req.MonthlyInvestment})
}
