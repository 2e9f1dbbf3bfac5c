package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Startup is a registered startup entity with its financial snapshot.
type Startup struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Description  string    `gorm:"size:2048" json:"description"`
	CreatorEmail string    `gorm:"size:255;not null;index" json:"creator_email"`
	Industry     string    `gorm:"size:255" json:"industry"`

	Revenue       float64 `gorm:"default:0" json:"revenue"`
	Burn          float64 `gorm:"default:0" json:"burn"`
	Cash          float64 `gorm:"default:0" json:"cash"`
	Growth        float64 `gorm:"default:0" json:"growth"`
	Team          int     `gorm:"default:0" json:"team"`
	Runway        int     `gorm:"default:0" json:"runway"`
	SurvivalScore int     `gorm:"default:0" json:"survival_score"`
}

func (s *Startup) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
