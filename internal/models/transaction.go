package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is income or expense.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Categories generated automatically by composite flows.
const (
	CategoryAssetPurchase = "Asset Purchase"
	CategoryDebtPayment   = "Debt Payment"
)

// Transaction represents a single income or expense record.
type Transaction struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"index;not null"`
	Type            TransactionType `gorm:"size:16;index;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category        string          `gorm:"size:64;index;not null"`
	Description     string          `gorm:"size:255"`
	TransactionDate time.Time       `gorm:"index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
