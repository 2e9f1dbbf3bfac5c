package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request lifecycle: pending is the only non-terminal state.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// InvestmentRequest is an investor's expressed interest in a target startup.
// StartupName and StartupOwner are snapshotted at creation time so the history
// survives deletion or renaming of the target.
type InvestmentRequest struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	InvestorUserID string    `gorm:"size:36;index;not null" json:"investor_user_id"`
	StartupUserID  string    `gorm:"size:36;index" json:"startup_user_id"`

	// StartupID is the raw target ref from the connect call; it may point at a
	// startups row or directly at a users row.
	StartupID    string `gorm:"size:36;index" json:"startup_id"`
	StartupName  string `gorm:"size:255" json:"startup_name"`
	StartupOwner string `gorm:"size:255;index" json:"startup_owner"` // creator email, used for owner filtering
	Message      string `gorm:"size:2048" json:"message"`
	Status       string `gorm:"size:16;default:pending;index" json:"status"`
	IsRead       bool   `gorm:"default:false" json:"is_read"`

	Investor *User `gorm:"foreignKey:InvestorUserID" json:"investor,omitempty"`
}

func (r *InvestmentRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
