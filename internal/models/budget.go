package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending cap for one category, unique per
// (owner, category, year, month).
type Budget struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"index;not null;uniqueIndex:idx_budgets_key"`
	Category  string          `gorm:"size:64;not null;uniqueIndex:idx_budgets_key"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Year      int             `gorm:"not null;uniqueIndex:idx_budgets_key"`
	Month     int             `gorm:"not null;uniqueIndex:idx_budgets_key"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
