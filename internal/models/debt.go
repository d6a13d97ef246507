package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus is the lifecycle state of a debt.
type DebtStatus string

const (
	DebtActive DebtStatus = "ACTIVE"
	DebtPaid   DebtStatus = "PAID"
)

// Debt tracks money owed to a lender. RemainingAmount stays within
// [0, InitialAmount] under payments; it only moves otherwise through an
// explicit edit.
type Debt struct {
	ID                 uint             `gorm:"primaryKey"`
	UserID             uint             `gorm:"index;not null"`
	LenderName         string           `gorm:"size:100;not null"`
	InitialAmount      decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	RemainingAmount    decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	MonthlyInstallment *decimal.Decimal `gorm:"type:decimal(15,2)"`
	DueDayOfMonth      *int
	DueDate            *time.Time `gorm:"index"`
	Status             DebtStatus `gorm:"size:16;index;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
