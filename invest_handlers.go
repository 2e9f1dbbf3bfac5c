package main

import (
	"errors"
	"net/http"
	"strings"

	"nexafin/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func connectHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		StartupID string `json:"startupId" binding:"required"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var result connectResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = createConnectionRequest(tx, user, req.StartupID, req.Message)
		return txErr
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "connect failed"})
		return
	}

	message := "Request sent to startup dashboard"
	if result.Duplicate {
		message = "Request already sent"
	}
	c.JSON(http.StatusOK, gin.H{
		"created":    result.Created,
		"duplicate":  result.Duplicate,
		"request_id": result.RequestID,
		"message":    message,
	})
}

// listMyRequestsHandler returns requests sent TO this user, with the
// investor's display identity.
func listMyRequestsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	reqs, err := listRequestsToUser(db, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, gin.H{
			"id":             r.ID,
			"investor_name":  investorDisplayName(r.Investor),
			"investor_email": investorEmail(r.Investor),
			"message":        r.Message,
			"status":         r.Status,
			"is_read":        r.IsRead,
			"created_at":     r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// listStartupRequestsHandler is the owner dashboard view. Rows may be linked
// by owner email or resolved user id depending on their vintage; both match.
func listStartupRequestsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	reqs, err := listRequestsForOwner(db, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(reqs))
	for _, r := range reqs {
		name := r.StartupName
		if name == "" {
			name = "Unknown Startup"
		}
		out = append(out, gin.H{
			"id":          r.ID,
			"senderEmail": investorEmail(r.Investor),
			"message":     r.Message,
			"startupName": name,
			"status":      r.Status,
			"createdAt":   r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func markRequestReadHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	updated, err := markRequestRead(db, c.Param("id"), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": updated})
}

func updateRequestStatusHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		ID     string `json:"id" binding:"required"`
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	var newStatus string
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		newStatus, txErr = resolveRequest(tx, req.ID, user, req.Action)
		return txErr
	})
	switch {
	case errors.Is(err, errInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"detail": errInvalidAction.Error()})
		return
	case errors.Is(err, errRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Request not found or unauthorized"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"new_status": newStatus,
		"message":    "Request " + newStatus,
	})
}

func investorDisplayName(investor *models.User) string {
	if investor == nil {
		return "Unknown Investor"
	}
	if at := strings.IndexByte(investor.Email, '@'); at > 0 {
		return investor.Email[:at]
	}
	return investor.Email
}

func investorEmail(investor *models.User) string {
	if investor == nil {
		return "Unknown"
	}
	return investor.Email
}
