package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account identity. Financial data lives in FinancialProfile
// (one-to-one); the generated allocation lives in Portfolio (zero-or-one).
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash []byte    `gorm:"not null" json:"-"`

	Profile   *FinancialProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"data,omitempty"`
	Portfolio *Portfolio        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
