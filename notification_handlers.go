package main

import (
	"net/http"

	"nexafin/models"

	"github.com/gin-gonic/gin"
)

// listNotificationsHandler returns the caller's notifications, newest first.
func listNotificationsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var rows []models.Notification
	if err := db.Where("receiver_email = ?", user.Email).
		Order("created_at desc").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func markNotificationReadHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	res := db.Model(&models.Notification{}).
		Where("id = ? AND receiver_email = ?", req.ID, user.Email).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
