package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sayajuli/money-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetService owns the asset register, including the designated "Cash"
// asset that mirrors the ledger. It never calls into the transaction
// service; the dependency runs the other way.
type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db}
}

// AssetInput carries user-editable asset fields.
type AssetInput struct {
	Name            string
	Type            models.AssetType
	CurrentValue    decimal.Decimal
	AcquisitionDate *time.Time
}

func (in *AssetInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: asset name is required", ErrInvalidArgument)
	}
	if in.CurrentValue.IsNegative() {
		return fmt.Errorf("%w: asset value must not be negative", ErrInvalidArgument)
	}
	if in.AcquisitionDate != nil && dateAfterToday(*in.AcquisitionDate) {
		return fmt.Errorf("%w: acquisition date cannot be in the future", ErrInvalidArgument)
	}
	return nil
}

// ListForOwner returns all assets of one user.
func (s *AssetService) ListForOwner(userID uint) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}

// GetByID loads one asset and verifies ownership.
func (s *AssetService) GetByID(id, userID uint) (*models.Asset, error) {
	return s.getTx(s.db, id, userID)
}

func (s *AssetService) getTx(tx *gorm.DB, id, userID uint) (*models.Asset, error) {
	var asset models.Asset
	if err := tx.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load asset: %w", err)
	}
	if asset.UserID != userID {
		return nil, fmt.Errorf("%w: asset %d", ErrAccessDenied, id)
	}
	return &asset, nil
}

// Create inserts a new asset without any ledger side effect.
func (s *AssetService) Create(userID uint, in AssetInput) (*models.Asset, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	asset := models.Asset{
		UserID:          userID,
		Name:            in.Name,
		Type:            in.Type,
		CurrentValue:    in.CurrentValue,
		AcquisitionDate: in.AcquisitionDate,
	}
	if err := s.db.Create(&asset).Error; err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return &asset, nil
}

// Update overwrites the editable fields of an owned asset.
func (s *AssetService) Update(id, userID uint, in AssetInput) (*models.Asset, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	asset, err := s.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	asset.Name = in.Name
	asset.Type = in.Type
	asset.CurrentValue = in.CurrentValue
	asset.AcquisitionDate = in.AcquisitionDate
	if err := s.db.Save(asset).Error; err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return asset, nil
}

// Delete removes an owned asset.
func (s *AssetService) Delete(id, userID uint) error {
	asset, err := s.GetByID(id, userID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(asset).Error; err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// Deposit adds amount to the user's Cash asset, creating it at zero first
// if it does not exist yet.
func (s *AssetService) Deposit(userID uint, amount decimal.Decimal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.depositTx(tx, userID, amount)
	})
}

// Withdraw subtracts amount from the user's Cash asset. The balance may go
// negative; overdraft is not an error here.
func (s *AssetService) Withdraw(userID uint, amount decimal.Decimal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.withdrawTx(tx, userID, amount)
	})
}

func (s *AssetService) depositTx(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	cash, err := s.cashAssetTx(tx, userID)
	if err != nil {
		return err
	}
	cash.CurrentValue = cash.CurrentValue.Add(amount)
	if err := tx.Save(cash).Error; err != nil {
		return fmt.Errorf("update cash asset: %w", err)
	}
	return nil
}

func (s *AssetService) withdrawTx(tx *gorm.DB, userID uint, amount decimal.Decimal) error {
	return s.depositTx(tx, userID, amount.Neg())
}

// cashAssetTx loads the owner's Cash asset, lazily creating it with value 0
// on first use.
func (s *AssetService) cashAssetTx(tx *gorm.DB, userID uint) (*models.Asset, error) {
	var cash models.Asset
	err := tx.Where("user_id = ? AND name = ?", userID, models.CashAssetName).First(&cash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cash = models.Asset{
			UserID:       userID,
			Name:         models.CashAssetName,
			Type:         models.AssetCash,
			CurrentValue: decimal.Zero,
		}
		if err := tx.Create(&cash).Error; err != nil {
			return nil, fmt.Errorf("create cash asset: %w", err)
		}
		return &cash, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cash asset: %w", err)
	}
	return &cash, nil
}

// findByNameTx returns the owner's asset with the given name, or nil when
// absent.
func (s *AssetService) findByNameTx(tx *gorm.DB, userID uint, name string) (*models.Asset, error) {
	var asset models.Asset
	err := tx.Where("user_id = ? AND name = ?", userID, name).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load asset by name: %w", err)
	}
	return &asset, nil
}

// TotalValue sums the current value of all assets of one user.
func (s *AssetService) TotalValue(userID uint) (decimal.Decimal, error) {
	assets, err := s.ListForOwner(userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.CurrentValue)
	}
	return total, nil
}
