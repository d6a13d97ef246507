package service

import (
	"testing"

	"github.com/sayajuli/money-management/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDebtDefaults(t *testing.T) {
	db := newTestDB(t)
	_, _, debts, _, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	debt, err := debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("10000")})
	require.NoError(t, err)
	assert.Equal(t, models.DebtActive, debt.Status)
	assert.Equal(t, "10000.00", debt.RemainingAmount.StringFixed(2))

	_, err = debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = debts.Create(user.ID, DebtInput{LenderName: " ", InitialAmount: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPayReducesRemaining(t *testing.T) {
	db := newTestDB(t)
	_, transactions, debts, _, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	debt, err := debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("1000")})
	require.NoError(t, err)

	debt, err = debts.Pay(debt.ID, user.ID, dec("250"))
	require.NoError(t, err)
	assert.Equal(t, "750.00", debt.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.DebtActive, debt.Status)

	debt, err = debts.Pay(debt.ID, user.ID, dec("250"))
	require.NoError(t, err)
	assert.Equal(t, "500.00", debt.RemainingAmount.StringFixed(2))

	// each payment produced one expense transaction
	txns, total, err := transactions.List(user.ID, ListFilter{Category: models.CategoryDebtPayment})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, txn := range txns {
		assert.Equal(t, models.TypeExpense, txn.Type)
		assert.Equal(t, "250.00", txn.Amount.StringFixed(2))
	}
}

func TestOverpaymentClampsAndCloses(t *testing.T) {
	db := newTestDB(t)
	assets, transactions, debts, _, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	debt, err := debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("300")})
	require.NoError(t, err)

	// overpaying clamps remaining at zero and flips the status
	debt, err = debts.Pay(debt.ID, user.ID, dec("500"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", debt.RemainingAmount.StringFixed(2))
	assert.Equal(t, models.DebtPaid, debt.Status)

	// the transaction carries the requested amount, not the clamped delta
	txns, _, err := transactions.List(user.ID, ListFilter{Category: models.CategoryDebtPayment})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "500.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "-500.00", cashValue(t, assets, user.ID).StringFixed(2))
}

func TestExactPaymentClosesDebt(t *testing.T) {
	db := newTestDB(t)
	_, _, debts, _, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	debt, err := debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("300")})
	require.NoError(t, err)

	debt, err = debts.Pay(debt.ID, user.ID, dec("300"))
	require.NoError(t, err)
	assert.True(t, debt.RemainingAmount.IsZero())
	assert.Equal(t, models.DebtPaid, debt.Status)
}

func TestPayValidation(t *testing.T) {
	db := newTestDB(t)
	_, _, debts, _, _ := newServices(db)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	debt, err := debts.Create(alice.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("100")})
	require.NoError(t, err)

	_, err = debts.Pay(debt.ID, alice.ID, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = debts.Pay(debt.ID, alice.ID, dec("-10"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = debts.Pay(debt.ID, bob.ID, dec("10"))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = debts.Pay(9999, alice.ID, dec("10"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDebtTotals(t *testing.T) {
	db := newTestDB(t)
	_, _, debts, _, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	installment := dec("150")
	_, err := debts.Create(user.ID, DebtInput{
		LenderName: "Bank", InitialAmount: dec("1000"), MonthlyInstallment: &installment,
	})
	require.NoError(t, err)
	// no installment counts as zero
	_, err = debts.Create(user.ID, DebtInput{LenderName: "Cousin", InitialAmount: dec("400")})
	require.NoError(t, err)

	paidInstallment := dec("999")
	paid, err := debts.Create(user.ID, DebtInput{
		LenderName: "Shop", InitialAmount: dec("50"), MonthlyInstallment: &paidInstallment,
	})
	require.NoError(t, err)
	_, err = debts.Pay(paid.ID, user.ID, dec("50"))
	require.NoError(t, err)

	remaining, err := debts.TotalRemaining(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "1400.00", remaining.StringFixed(2))

	// only ACTIVE debts contribute installments
	totalInstallment, err := debts.TotalMonthlyInstallment(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.00", totalInstallment.StringFixed(2))

	active, err := debts.ListByStatus(user.ID, models.DebtActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	paidList, err := debts.ListByStatus(user.ID, models.DebtPaid)
	require.NoError(t, err)
	assert.Len(t, paidList, 1)
}

func TestDebtUpdateBounds(t *testing.T) {
	db := newTestDB(t)
	_, _, debts, _, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	debt, err := debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("1000")})
	require.NoError(t, err)

	_, err = debts.Update(debt.ID, user.ID, DebtUpdate{
		LenderName: "Bank", InitialAmount: dec("1000"),
		RemainingAmount: dec("1500"), Status: models.DebtActive,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	updated, err := debts.Update(debt.ID, user.ID, DebtUpdate{
		LenderName: "Bank", InitialAmount: dec("1000"),
		RemainingAmount: dec("600"), Status: models.DebtActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "600.00", updated.RemainingAmount.StringFixed(2))
}
