package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portfolio is a user's current asset allocation (zero-or-one per user).
// AllocationJSON is the ordered line-item list serialized as JSON; regeneration
// replaces the whole column, never individual items.
type Portfolio struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	UserID            string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	MonthlyInvestment float64   `gorm:"default:0" json:"monthly_investment"`
	AllocationJSON    string    `gorm:"type:text" json:"-"`
}

func (p *Portfolio) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
