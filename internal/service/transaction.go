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

// TransactionService owns the income/expense ledger. Recording an entry
// always adjusts the owner's Cash asset inside the same database
// transaction, so the ledger and the cash balance cannot diverge.
type TransactionService struct {
	db     *gorm.DB
	assets *AssetService
}

func NewTransactionService(db *gorm.DB, assets *AssetService) *TransactionService {
	return &TransactionService{db: db, assets: assets}
}

// TransactionInput carries user-editable transaction fields. A zero Date
// defaults to today.
type TransactionInput struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

func (in *TransactionInput) validate() error {
	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return fmt.Errorf("%w: type must be INCOME or EXPENSE", ErrInvalidArgument)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidArgument)
	}
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidArgument)
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if dateAfterToday(in.Date) {
		return fmt.Errorf("%w: transaction date cannot be in the future", ErrInvalidArgument)
	}
	return nil
}

// Record validates and stores a transaction, then deposits (income) or
// withdraws (expense) the same amount on the Cash asset. Both writes commit
// or roll back together.
func (s *TransactionService) Record(userID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var txn *models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = s.recordTx(tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// recordTx is the composable core of Record, shared with debt payments and
// asset purchases so the whole composite stays one unit of work. Input must
// already be validated.
func (s *TransactionService) recordTx(tx *gorm.DB, userID uint, in TransactionInput) (*models.Transaction, error) {
	txn := models.Transaction{
		UserID:          userID,
		Type:            in.Type,
		Amount:          in.Amount,
		Category:        in.Category,
		Description:     in.Description,
		TransactionDate: in.Date,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if txn.Type == models.TypeIncome {
		if err := s.assets.depositTx(tx, userID, txn.Amount); err != nil {
			return nil, err
		}
	} else {
		if err := s.assets.withdrawTx(tx, userID, txn.Amount); err != nil {
			return nil, err
		}
	}
	return &txn, nil
}

// GetByID loads one transaction and verifies ownership.
func (s *TransactionService) GetByID(id, userID uint) (*models.Transaction, error) {
	return s.getTx(s.db, id, userID)
}

func (s *TransactionService) getTx(tx *gorm.DB, id, userID uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := tx.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %d", ErrAccessDenied, id)
	}
	return &txn, nil
}

// Update mutates a transaction in place. It deliberately does not re-run
// the cash adjustment; an edited amount or type leaves Cash untouched.
func (s *TransactionService) Update(id, userID uint, in TransactionInput) (*models.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	txn, err := s.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	txn.Type = in.Type
	txn.Amount = in.Amount
	txn.Category = in.Category
	txn.Description = in.Description
	txn.TransactionDate = in.Date
	if err := s.db.Save(txn).Error; err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return txn, nil
}

// Delete removes a transaction and reverses its original cash adjustment,
// so deleting a mis-entered row restores the balance.
func (s *TransactionService) Delete(id, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txn, err := s.getTx(tx, id, userID)
		if err != nil {
			return err
		}
		if err := tx.Delete(txn).Error; err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		if txn.Type == models.TypeIncome {
			return s.assets.withdrawTx(tx, userID, txn.Amount)
		}
		return s.assets.depositTx(tx, userID, txn.Amount)
	})
}

// ListFilter narrows and pages a transaction listing. Start/End form a
// half-open date range [Start, End).
type ListFilter struct {
	Start    *time.Time
	End      *time.Time
	Type     models.TransactionType // empty = both
	Category string                 // empty = all
	Page     int
	PageSize int
	Sort     string // date_desc (default), date_asc, amount_desc, amount_asc
}

// List returns one page of transactions plus the total match count.
func (s *TransactionService) List(userID uint, f ListFilter) ([]models.Transaction, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = 20
	}

	orderBy := "transaction_date DESC, id DESC"
	switch f.Sort {
	case "date_asc":
		orderBy = "transaction_date ASC, id ASC"
	case "amount_desc":
		orderBy = "amount DESC, id DESC"
	case "amount_asc":
		orderBy = "amount ASC, id ASC"
	}

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if f.Start != nil {
		base = base.Where("transaction_date >= ?", *f.Start)
	}
	if f.End != nil {
		base = base.Where("transaction_date < ?", *f.End)
	}
	if f.Type != "" {
		base = base.Where("type = ?", f.Type)
	}
	if f.Category != "" {
		base = base.Where("category = ?", f.Category)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var txns []models.Transaction
	if err := base.Session(&gorm.Session{}).
		Order(orderBy).
		Limit(f.PageSize).
		Offset((f.Page - 1) * f.PageSize).
		Find(&txns).Error; err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return txns, total, nil
}

// ListForPeriod returns all transactions in [start, end) ordered by date.
func (s *TransactionService) ListForPeriod(userID uint, start, end time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := s.db.
		Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, start, end).
		Order("transaction_date ASC, id ASC").
		Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("list transactions for period: %w", err)
	}
	return txns, nil
}

// SumByType totals all amounts of one type, optionally scoped to a
// half-open date range.
func (s *TransactionService) SumByType(userID uint, txType models.TransactionType, start, end *time.Time) (decimal.Decimal, error) {
	q := s.db.Where("user_id = ? AND type = ?", userID, txType)
	if start != nil {
		q = q.Where("transaction_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("transaction_date < ?", *end)
	}
	var txns []models.Transaction
	if err := q.Find(&txns).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total, nil
}

// ExpenseSummaryByCategory sums expenses per category, optionally scoped to
// a half-open date range.
func (s *TransactionService) ExpenseSummaryByCategory(userID uint, start, end *time.Time) (map[string]decimal.Decimal, error) {
	q := s.db.Where("user_id = ? AND type = ?", userID, models.TypeExpense)
	if start != nil {
		q = q.Where("transaction_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("transaction_date < ?", *end)
	}
	var txns []models.Transaction
	if err := q.Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	summary := make(map[string]decimal.Decimal)
	for _, t := range txns {
		summary[t.Category] = summary[t.Category].Add(t.Amount)
	}
	return summary, nil
}

// DistinctCategories returns the sorted set of category names the user has
// ever recorded.
func (s *TransactionService) DistinctCategories(userID uint) ([]string, error) {
	var categories []string
	if err := s.db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// RecordAssetPurchase is the "record an asset purchase" flow. If the named
// asset exists and newValue exceeds its current value, the difference is
// logged as an automatic expense (category "Asset Purchase") and the value
// updated; a value at or below the old one changes nothing. A missing asset
// is created at newValue with no transaction. The flow lives here rather
// than in the asset register so the asset register never calls back into
// the ledger; the generated expense goes through recordTx and cannot
// re-enter this method.
func (s *TransactionService) RecordAssetPurchase(userID uint, in AssetInput) (*models.Asset, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var result *models.Asset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.assets.findByNameTx(tx, userID, in.Name)
		if err != nil {
			return err
		}

		if existing == nil {
			asset := models.Asset{
				UserID:          userID,
				Name:            in.Name,
				Type:            in.Type,
				CurrentValue:    in.CurrentValue,
				AcquisitionDate: in.AcquisitionDate,
			}
			if err := tx.Create(&asset).Error; err != nil {
				return fmt.Errorf("create asset: %w", err)
			}
			result = &asset
			return nil
		}

		difference := in.CurrentValue.Sub(existing.CurrentValue)
		if !difference.IsPositive() {
			result = existing
			return nil
		}

		existing.CurrentValue = in.CurrentValue
		if err := tx.Save(existing).Error; err != nil {
			return fmt.Errorf("update asset: %w", err)
		}
		if _, err := s.recordTx(tx, userID, TransactionInput{
			Type:        models.TypeExpense,
			Amount:      difference,
			Category:    models.CategoryAssetPurchase,
			Description: "Investment/purchase for: " + in.Name,
			Date:        time.Now(),
		}); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
