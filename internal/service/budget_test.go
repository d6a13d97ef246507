package service

import (
	"testing"
	"time"

	"github.com/sayajuli/money-management/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetUpsertKeepsIdentity(t *testing.T) {
	db := newTestDB(t)
	_, _, _, budgets, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	first, err := budgets.CreateOrUpdate(user.ID, BudgetInput{
		Category: "Food", Amount: dec("500"), Year: 2026, Month: 1,
	})
	require.NoError(t, err)

	second, err := budgets.CreateOrUpdate(user.ID, BudgetInput{
		Category: "Food", Amount: dec("750"), Year: 2026, Month: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "750.00", second.Amount.StringFixed(2))

	list, err := budgets.ListForPeriod(user.ID, 2026, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "750.00", list[0].Amount.StringFixed(2))

	// a different month is a different key
	_, err = budgets.CreateOrUpdate(user.ID, BudgetInput{
		Category: "Food", Amount: dec("400"), Year: 2026, Month: 2,
	})
	require.NoError(t, err)
	list, err = budgets.ListForPeriod(user.ID, 2026, 2)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestBudgetValidation(t *testing.T) {
	db := newTestDB(t)
	_, _, _, budgets, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	cases := []BudgetInput{
		{Category: "  ", Amount: dec("100"), Year: 2026, Month: 1},
		{Category: "Food", Amount: decimal.Zero, Year: 2026, Month: 1},
		{Category: "Food", Amount: dec("-10"), Year: 2026, Month: 1},
		{Category: "Food", Amount: dec("100"), Year: 2026, Month: 0},
		{Category: "Food", Amount: dec("100"), Year: 2026, Month: 13},
	}
	for _, in := range cases {
		_, err := budgets.CreateOrUpdate(user.ID, in)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestBudgetDeleteOwnership(t *testing.T) {
	db := newTestDB(t)
	_, _, _, budgets, _ := newServices(db)
	alice := newTestUser(t, db, "alice")
	bob := newTestUser(t, db, "bob")

	budget, err := budgets.CreateOrUpdate(alice.ID, BudgetInput{
		Category: "Food", Amount: dec("500"), Year: 2026, Month: 1,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, budgets.Delete(budget.ID, bob.ID), ErrAccessDenied)
	assert.ErrorIs(t, budgets.Delete(9999, alice.ID), ErrNotFound)
	require.NoError(t, budgets.Delete(budget.ID, alice.ID))

	list, err := budgets.ListForPeriod(alice.ID, 2026, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTrackingInfoTiersAndRounding(t *testing.T) {
	db := newTestDB(t)
	_, transactions, _, budgets, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	year, month := 2026, 4
	date := time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.Local)

	for category, cap := range map[string]string{
		"Food":      "1000",
		"Transport": "1000",
		"Rent":      "1000",
		"Hobby":     "1000",
	} {
		_, err := budgets.CreateOrUpdate(user.ID, BudgetInput{
			Category: category, Amount: dec(cap), Year: year, Month: month,
		})
		require.NoError(t, err)
	}
	for category, spent := range map[string]string{
		"Food":      "755", // 75.5% rounds half-up to 76, crossing the warning line
		"Transport": "760.01",
		"Rent":      "905",
	} {
		_, err := transactions.Record(user.ID, TransactionInput{
			Type: models.TypeExpense, Amount: dec(spent), Category: category, Date: date,
		})
		require.NoError(t, err)
	}

	infos, err := budgets.TrackingInfo(user.ID, year, month)
	require.NoError(t, err)
	require.Len(t, infos, 4)

	byCategory := map[string]BudgetTracking{}
	for _, info := range infos {
		byCategory[info.Budget.Category] = info
	}

	assert.Equal(t, 76, byCategory["Food"].PercentSpent)
	assert.Equal(t, TierWarning, byCategory["Food"].Tier)

	assert.Equal(t, 76, byCategory["Transport"].PercentSpent)
	assert.Equal(t, TierWarning, byCategory["Transport"].Tier)

	assert.Equal(t, 91, byCategory["Rent"].PercentSpent)
	assert.Equal(t, TierDanger, byCategory["Rent"].Tier)

	// nothing spent at all
	assert.Equal(t, 0, byCategory["Hobby"].PercentSpent)
	assert.Equal(t, TierNormal, byCategory["Hobby"].Tier)
	assert.True(t, byCategory["Hobby"].Spent.IsZero())
}

func TestTrackingInfoZeroCap(t *testing.T) {
	db := newTestDB(t)
	_, transactions, _, budgets, _ := newServices(db)
	user := newTestUser(t, db, "alice")

	// a zero cap cannot pass validation, so plant the row directly
	budget := models.Budget{
		UserID: user.ID, Category: "Food",
		Amount: decimal.Zero, Year: 2026, Month: 5,
	}
	require.NoError(t, db.Create(&budget).Error)

	_, err := transactions.Record(user.ID, TransactionInput{
		Type: models.TypeExpense, Amount: dec("100"), Category: "Food",
		Date: time.Date(2026, 5, 10, 0, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	infos, err := budgets.TrackingInfo(user.ID, 2026, 5)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, 0, infos[0].PercentSpent)
	assert.Equal(t, TierNormal, infos[0].Tier)
	assert.Equal(t, "100.00", infos[0].Spent.StringFixed(2))
}
