package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetType classifies an asset.
type AssetType string

const (
	AssetCash       AssetType = "CASH"
	AssetInvestment AssetType = "INVESTMENT"
	AssetProperty   AssetType = "PROPERTY"
	AssetVehicle    AssetType = "VEHICLE"
	AssetOther      AssetType = "OTHER"
)

// CashAssetName is the reserved name of the per-user asset that mirrors the
// net effect of all ledger transactions.
const CashAssetName = "Cash"

// Asset represents a named asset with a current value. Name is unique per
// owner; at most one asset per owner is the automatic cash sink/source.
type Asset struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"index;not null;uniqueIndex:idx_assets_owner_name"`
	Name            string          `gorm:"size:64;not null;uniqueIndex:idx_assets_owner_name"`
	Type            AssetType       `gorm:"size:16;not null"`
	CurrentValue    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AcquisitionDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
