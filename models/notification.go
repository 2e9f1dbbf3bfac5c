package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationTypeRequestAccepted is emitted to the investor when a startup
// accepts their investment request.
const NotificationTypeRequestAccepted = "investor_request_accepted"

// Notification is an in-app message for a user. Append-only except for the
// read flag, which the receiver may flip.
type Notification struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ReceiverEmail string    `gorm:"size:255;index" json:"receiver_email"`
	Type          string    `gorm:"size:64" json:"type"`
	Message       string    `gorm:"size:1024" json:"message"`
	Read          bool      `gorm:"default:false" json:"read"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
