package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinancialProfile holds a user's financial data (one-to-one with User).
// Exactly one row per user; created on first access if absent.
type FinancialProfile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	UserID    string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`

	UserType string `gorm:"size:32" json:"user_type"` // "job" or "startup"

	Income    float64 `gorm:"default:0" json:"income"`
	Expenses  float64 `gorm:"default:0" json:"expenses"`
	Revenue   float64 `gorm:"default:0" json:"revenue"`
	Employees int     `gorm:"default:0" json:"employees"`
	Budget    float64 `gorm:"default:0" json:"budget"`

	CurrentSavings float64 `gorm:"default:0" json:"current_savings"`
	RiskTolerance  string  `gorm:"size:16;default:moderate" json:"risk_tolerance"`
	InvestmentGoal string  `gorm:"size:32;default:wealth_growth" json:"investment_goal"`

	// InvestmentOverride and InvestmentAmount are retired. Columns remain so
	// historical rows keep their values, but nothing writes or reads them.
	InvestmentOverride *float64 `json:"investment_override,omitempty"`
	InvestmentAmount   *float64 `json:"investment_amount,omitempty"`
	AIInvestmentAmount *float64 `gorm:"column:ai_investment_amount" json:"ai_investment_amount,omitempty"`
	MonthlyInvestment  float64  `gorm:"default:0" json:"monthly_investment"`

	// Corporate treasury (startup users only)
	CashBalance  float64 `gorm:"default:0" json:"cash_balance"`
	RunwayMonths float64 `gorm:"default:0" json:"runway_months"`
	Debt         float64 `gorm:"default:0" json:"debt"`
	OtherAssets  float64 `gorm:"default:0" json:"other_assets"`

	MarketText string `gorm:"size:2048" json:"market_text"`

	// Identity verification
	GSTNumber     string `gorm:"size:15" json:"gst_number"`
	AadhaarNumber string `gorm:"size:12" json:"aadhaar_number"`
}

func (p *FinancialProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
