package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget progress tiers.
const (
	TierDanger  = "bg-danger"
	TierWarning = "bg-warning"
	TierNormal  = "bg-success"
)

// BudgetService owns the per-month spending caps. It reads ledger sums but
// never mutates the ledger.
type BudgetService struct {
	db           *gorm.DB
	transactions *TransactionService
}

func NewBudgetService(db *gorm.DB, transactions *TransactionService) *BudgetService {
	return &BudgetService{db: db, transactions: transactions}
}

// BudgetInput carries user-editable budget fields.
type BudgetInput struct {
	Category string
	Amount   decimal.Decimal
	Year     int
	Month    int
}

func (in *BudgetInput) validate() error {
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidArgument)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("%w: budget amount must be greater than zero", ErrInvalidArgument)
	}
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidArgument)
	}
	if in.Year < 1 {
		return fmt.Errorf("%w: year is required", ErrInvalidArgument)
	}
	return nil
}

// CreateOrUpdate upserts a budget keyed by (owner, category, year, month).
// A matching row keeps its identity and only the cap changes; there is
// never a duplicate for the key.
func (s *BudgetService) CreateOrUpdate(userID uint, in BudgetInput) (*models.Budget, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var budget models.Budget
	err := s.db.
		Where("user_id = ? AND category = ? AND year = ? AND month = ?",
			userID, in.Category, in.Year, in.Month).
		First(&budget).Error
	switch {
	case err == nil:
		budget.Amount = in.Amount
		if err := s.db.Save(&budget).Error; err != nil {
			return nil, fmt.Errorf("update budget: %w", err)
		}
		return &budget, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		budget = models.Budget{
			UserID:   userID,
			Category: in.Category,
			Amount:   in.Amount,
			Year:     in.Year,
			Month:    in.Month,
		}
		if err := s.db.Create(&budget).Error; err != nil {
			return nil, fmt.Errorf("create budget: %w", err)
		}
		return &budget, nil
	default:
		return nil, fmt.Errorf("load budget: %w", err)
	}
}

// ListForPeriod returns the user's budgets for one (year, month).
func (s *BudgetService) ListForPeriod(userID uint, year, month int) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		Order("category ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Delete removes an owned budget.
func (s *BudgetService) Delete(id, userID uint) error {
	var budget models.Budget
	if err := s.db.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: budget %d", ErrNotFound, id)
		}
		return fmt.Errorf("load budget: %w", err)
	}
	if budget.UserID != userID {
		return fmt.Errorf("%w: budget %d", ErrAccessDenied, id)
	}
	if err := s.db.Delete(&budget).Error; err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

// BudgetTracking pairs a budget with its actual spend for the period.
type BudgetTracking struct {
	Budget       models.Budget
	Spent        decimal.Decimal
	PercentSpent int
	Tier         string
}

// TrackingInfo compares each budget of the period against the actual
// expense sum of its category. The percentage rounds half-up to whole
// numbers and is defined as 0 for a zero cap.
func (s *BudgetService) TrackingInfo(userID uint, year, month int) ([]BudgetTracking, error) {
	budgets, err := s.ListForPeriod(userID, year, month)
	if err != nil {
		return nil, err
	}
	start, end := monthRange(year, month)
	summary, err := s.transactions.ExpenseSummaryByCategory(userID, &start, &end)
	if err != nil {
		return nil, err
	}

	infos := make([]BudgetTracking, 0, len(budgets))
	for _, b := range budgets {
		spent := summary[b.Category] // zero value when nothing was spent

		percent := 0
		if !b.Amount.IsZero() {
			p, err := money.Percentage(spent, b.Amount, 0)
			if err != nil {
				return nil, err
			}
			percent = int(p.IntPart())
		}

		tier := TierNormal
		switch {
		case percent > 90:
			tier = TierDanger
		case percent > 75:
			tier = TierWarning
		}

		infos = append(infos, BudgetTracking{
			Budget:       b,
			Spent:        spent,
			PercentSpent: percent,
			Tier:         tier,
		})
	}
	return infos, nil
}
