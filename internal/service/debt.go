package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DebtService owns the debt register. Payments flow through the transaction
// service so the expense entry and the cash withdrawal happen in the same
// unit of work as the balance update.
type DebtService struct {
	db           *gorm.DB
	transactions *TransactionService
}

func NewDebtService(db *gorm.DB, transactions *TransactionService) *DebtService {
	return &DebtService{db: db, transactions: transactions}
}

// DebtInput carries user-editable debt fields.
type DebtInput struct {
	LenderName         string
	InitialAmount      decimal.Decimal
	MonthlyInstallment *decimal.Decimal
	DueDayOfMonth      *int
	DueDate            *time.Time
}

func (in *DebtInput) validate() error {
	in.LenderName = strings.TrimSpace(in.LenderName)
	if in.LenderName == "" {
		return fmt.Errorf("%w: lender name is required", ErrInvalidArgument)
	}
	if !in.InitialAmount.IsPositive() {
		return fmt.Errorf("%w: initial amount must be greater than zero", ErrInvalidArgument)
	}
	if in.MonthlyInstallment != nil && in.MonthlyInstallment.IsNegative() {
		return fmt.Errorf("%w: monthly installment must not be negative", ErrInvalidArgument)
	}
	if in.DueDayOfMonth != nil && (*in.DueDayOfMonth < 1 || *in.DueDayOfMonth > 31) {
		return fmt.Errorf("%w: due day of month must be between 1 and 31", ErrInvalidArgument)
	}
	return nil
}

// Create inserts a new debt. Remaining starts at the initial amount and the
// status at ACTIVE.
func (s *DebtService) Create(userID uint, in DebtInput) (*models.Debt, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	debt := models.Debt{
		UserID:             userID,
		LenderName:         in.LenderName,
		InitialAmount:      in.InitialAmount,
		RemainingAmount:    in.InitialAmount,
		MonthlyInstallment: in.MonthlyInstallment,
		DueDayOfMonth:      in.DueDayOfMonth,
		DueDate:            in.DueDate,
		Status:             models.DebtActive,
	}
	if err := s.db.Create(&debt).Error; err != nil {
		return nil, fmt.Errorf("create debt: %w", err)
	}
	return &debt, nil
}

// ListForOwner returns all debts of one user.
func (s *DebtService) ListForOwner(userID uint) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&debts).Error; err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return debts, nil
}

// ListByStatus returns the user's debts with the given status.
func (s *DebtService) ListByStatus(userID uint, status models.DebtStatus) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ? AND status = ?", userID, status).
		Order("id ASC").Find(&debts).Error; err != nil {
		return nil, fmt.Errorf("list debts by status: %w", err)
	}
	return debts, nil
}

// DebtListFilter pages a debt listing, optionally narrowed to a due-date
// month and/or a status. Zero year/month means no period filter.
type DebtListFilter struct {
	Year     int
	Month    int
	Status   models.DebtStatus // empty = all
	Page     int
	PageSize int
}

// ListPaged returns one page of debts sorted by due date descending, plus
// the total match count.
func (s *DebtService) ListPaged(userID uint, f DebtListFilter) ([]models.Debt, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 100 {
		f.PageSize = 20
	}

	base := s.db.Model(&models.Debt{}).Where("user_id = ?", userID)
	if f.Year != 0 && f.Month != 0 {
		start, end := monthRange(f.Year, f.Month)
		base = base.Where("due_date >= ? AND due_date < ?", start, end)
	}
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count debts: %w", err)
	}

	var debts []models.Debt
	if err := base.Session(&gorm.Session{}).
		Order("due_date DESC, id DESC").
		Limit(f.PageSize).
		Offset((f.Page - 1) * f.PageSize).
		Find(&debts).Error; err != nil {
		return nil, 0, fmt.Errorf("list debts: %w", err)
	}
	return debts, total, nil
}

// GetByID loads one debt and verifies ownership.
func (s *DebtService) GetByID(id, userID uint) (*models.Debt, error) {
	return s.getTx(s.db, id, userID)
}

func (s *DebtService) getTx(tx *gorm.DB, id, userID uint) (*models.Debt, error) {
	var debt models.Debt
	if err := tx.First(&debt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: debt %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load debt: %w", err)
	}
	if debt.UserID != userID {
		return nil, fmt.Errorf("%w: debt %d", ErrAccessDenied, id)
	}
	return &debt, nil
}

// DebtUpdate carries an explicit edit, which unlike Pay may move remaining
// and status freely.
type DebtUpdate struct {
	LenderName         string
	InitialAmount      decimal.Decimal
	RemainingAmount    decimal.Decimal
	MonthlyInstallment *decimal.Decimal
	DueDayOfMonth      *int
	DueDate            *time.Time
	Status             models.DebtStatus
}

// Update overwrites an owned debt with explicitly edited values.
func (s *DebtService) Update(id, userID uint, in DebtUpdate) (*models.Debt, error) {
	in.LenderName = strings.TrimSpace(in.LenderName)
	if in.LenderName == "" {
		return nil, fmt.Errorf("%w: lender name is required", ErrInvalidArgument)
	}
	if !in.InitialAmount.IsPositive() {
		return nil, fmt.Errorf("%w: initial amount must be greater than zero", ErrInvalidArgument)
	}
	if in.RemainingAmount.IsNegative() || in.RemainingAmount.GreaterThan(in.InitialAmount) {
		return nil, fmt.Errorf("%w: remaining must be between zero and the initial amount", ErrInvalidArgument)
	}
	if in.Status != models.DebtActive && in.Status != models.DebtPaid {
		return nil, fmt.Errorf("%w: status must be ACTIVE or PAID", ErrInvalidArgument)
	}

	debt, err := s.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	debt.LenderName = in.LenderName
	debt.InitialAmount = in.InitialAmount
	debt.RemainingAmount = in.RemainingAmount
	debt.MonthlyInstallment = in.MonthlyInstallment
	debt.DueDayOfMonth = in.DueDayOfMonth
	debt.DueDate = in.DueDate
	debt.Status = in.Status
	if err := s.db.Save(debt).Error; err != nil {
		return nil, fmt.Errorf("update debt: %w", err)
	}
	return debt, nil
}

// Delete removes an owned debt.
func (s *DebtService) Delete(id, userID uint) error {
	debt, err := s.GetByID(id, userID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(debt).Error; err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return nil
}

// Pay reduces the remaining balance by amount, clamped at zero, and flips
// the status to PAID when the balance reaches zero. It always records an
// expense transaction of the requested amount (category "Debt Payment"),
// which in turn withdraws from Cash; the balance update, the transaction
// and the cash adjustment commit or roll back as one.
func (s *DebtService) Pay(debtID, userID uint, amount decimal.Decimal) (*models.Debt, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", ErrInvalidArgument)
	}

	var debt *models.Debt
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		debt, err = s.getTx(tx, debtID, userID)
		if err != nil {
			return err
		}

		remaining := money.Clamp(debt.RemainingAmount.Sub(amount), decimal.Zero)
		if remaining.IsZero() {
			debt.Status = models.DebtPaid
		}
		debt.RemainingAmount = remaining
		if err := tx.Save(debt).Error; err != nil {
			return fmt.Errorf("update debt: %w", err)
		}

		// the transaction carries the requested amount, not the clamped delta
		_, err = s.transactions.recordTx(tx, userID, TransactionInput{
			Type:        models.TypeExpense,
			Amount:      amount,
			Category:    models.CategoryDebtPayment,
			Description: "Payment for debt to: " + debt.LenderName,
			Date:        time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// TotalRemaining sums the remaining balance over all debts of one user.
func (s *DebtService) TotalRemaining(userID uint) (decimal.Decimal, error) {
	debts, err := s.ListForOwner(userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.RemainingAmount)
	}
	return total, nil
}

// TotalMonthlyInstallment sums installments over ACTIVE debts only; debts
// without an installment count as zero.
func (s *DebtService) TotalMonthlyInstallment(userID uint) (decimal.Decimal, error) {
	debts, err := s.ListByStatus(userID, models.DebtActive)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, d := range debts {
		if d.MonthlyInstallment != nil {
			total = total.Add(*d.MonthlyInstallment)
		}
	}
	return total, nil
}
