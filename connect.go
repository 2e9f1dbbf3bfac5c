package main

import (
	"errors"
	"fmt"

	"nexafin/models"

	"gorm.io/gorm"
)

// connectResult is the structured outcome of a connect call. A duplicate is a
// normal outcome, not an error.
type connectResult struct {
	Created   bool   `json:"created"`
	Duplicate bool   `json:"duplicate"`
	RequestID string `json:"request_id,omitempty"`
}

// createConnectionRequest records an investor's interest in a target.
// The target ref is resolved against the startups table first (owner is its
// creator); if no startup matches, the ref is treated as a raw user id.
// At most one pending request per (investor, target) pair is kept: a duplicate
// is reported back, never inserted. The check is read-then-write, so two
// near-simultaneous calls can both pass it; that race is accepted.
func createConnectionRequest(tx *gorm.DB, investor *models.User, targetRef, message string) (connectResult, error) {
	var existing models.InvestmentRequest
	err := tx.Where("investor_user_id = ? AND startup_id = ? AND status = ?",
		investor.ID, targetRef, models.RequestPending).First(&existing).Error
	if err == nil {
		return connectResult{Duplicate: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return connectResult{}, err
	}

	// Snapshot the target's name and owner now so the request history survives
	// deletion or renaming of the target.
	targetName := "Unknown Startup"
	ownerEmail := ""
	ownerUserID := ""

	var startup models.Startup
	if err := tx.Where("id = ?", targetRef).First(&startup).Error; err == nil {
		targetName = startup.Name
		ownerEmail = startup.CreatorEmail
		var owner models.User
		if err := tx.Where("email = ?", ownerEmail).First(&owner).Error; err == nil {
			ownerUserID = owner.ID
		} else {
			// Owner account gone but the startup row remains; keep the raw ref
			// so the row stays addressable.
			ownerUserID = targetRef
		}
	} else {
		var target models.User
		if err := tx.Where("id = ?", targetRef).First(&target).Error; err == nil {
			ownerUserID = target.ID
			ownerEmail = target.Email
			targetName = "Startup Profile"
		}
	}

	req := models.InvestmentRequest{
		InvestorUserID: investor.ID,
		StartupUserID:  ownerUserID,
		StartupID:      targetRef,
		StartupName:    targetName,
		StartupOwner:   ownerEmail,
		Message:        message,
		Status:         models.RequestPending,
		IsRead:         false,
	}
	if err := tx.Create(&req).Error; err != nil {
		return connectResult{}, err
	}
	return connectResult{Created: true, RequestID: req.ID}, nil
}

// listRequestsForOwner returns all requests targeting the caller, newest
// first. Historical rows may be linked by owner email or by resolved user id
// depending on how the target resolved at creation time, so both are matched.
func listRequestsForOwner(tx *gorm.DB, owner *models.User) ([]models.InvestmentRequest, error) {
	var reqs []models.InvestmentRequest
	err := tx.Preload("Investor").
		Where("startup_owner = ? OR startup_user_id = ?", owner.Email, owner.ID).
		Order("created_at desc").
		Find(&reqs).Error
	return reqs, err
}

// listRequestsToUser returns requests whose resolved target user is the
// caller, newest first.
func listRequestsToUser(tx *gorm.DB, user *models.User) ([]models.InvestmentRequest, error) {
	var reqs []models.InvestmentRequest
	err := tx.Preload("Investor").
		Where("startup_user_id = ?", user.ID).
		Order("created_at desc").
		Find(&reqs).Error
	return reqs, err
}

// markRequestRead flips is_read on a single request scoped to the caller as
// target owner. Status is untouched. Returns whether a row was updated.
func markRequestRead(tx *gorm.DB, requestID string, owner *models.User) (bool, error) {
	res := tx.Model(&models.InvestmentRequest{}).
		Where("id = ? AND startup_user_id = ?", requestID, owner.ID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// resolveRequest applies accept or reject to a pending request owned by the
// caller. Terminal states are immutable: a second resolution attempt fails the
// same way as a missing request. Accept emits exactly one notification to the
// investor; reject emits none.
func resolveRequest(tx *gorm.DB, requestID string, owner *models.User, action string) (string, error) {
	if action != "accept" && action != "reject" {
		return "", errInvalidAction
	}

	var req models.InvestmentRequest
	err := tx.Where("id = ? AND startup_user_id = ?", requestID, owner.ID).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errRequestNotFound
		}
		return "", err
	}
	if req.Status != models.RequestPending {
		return "", errRequestNotFound
	}

	newStatus := models.RequestAccepted
	if action == "reject" {
		newStatus = models.RequestRejected
	}
	if err := tx.Model(&req).Update("status", newStatus).Error; err != nil {
		return "", err
	}

	if newStatus == models.RequestAccepted {
		var investor models.User
		if err := tx.Where("id = ?", req.InvestorUserID).First(&investor).Error; err == nil {
			name := req.StartupName
			if name == "" {
				name = "a startup"
			}
			notif := models.Notification{
				ReceiverEmail: investor.Email,
				Type:          models.NotificationTypeRequestAccepted,
				Message:       fmt.Sprintf("Your investment request for %s was accepted.", name),
			}
			if err := tx.Create(&notif).Error; err != nil {
				return "", err
			}
		}
	}
	return newStatus, nil
}
