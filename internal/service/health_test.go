package service

import (
	"testing"
	"time"

	"github.com/sayajuli/money-management/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebtToAssetRatio(t *testing.T) {
	db := newTestDB(t)
	assets, _, debts, _, health := newServices(db)
	user := newTestUser(t, db, "alice")

	// no assets, no debts
	metric, err := health.DebtToAssetRatio(user.ID)
	require.NoError(t, err)
	assert.True(t, metric.Ratio.IsZero())
	assert.Equal(t, StatusHealthy, metric.Status)

	// no assets but outstanding debt pins the ratio at 1
	_, err = debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("100")})
	require.NoError(t, err)
	metric, err = health.DebtToAssetRatio(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", metric.Ratio.String())
	assert.Equal(t, StatusAtRisk, metric.Status)
	assert.Equal(t, TierDanger, metric.Tier)

	// 500 debt over 1000 assets
	_, err = assets.Create(user.ID, AssetInput{Name: "Gold", Type: models.AssetInvestment, CurrentValue: dec("1000")})
	require.NoError(t, err)
	_, err = debts.Create(user.ID, DebtInput{LenderName: "Cousin", InitialAmount: dec("400")})
	require.NoError(t, err)
	metric, err = health.DebtToAssetRatio(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.5000", metric.Ratio.StringFixed(4))
	assert.Equal(t, StatusNeedsAttention, metric.Status)
	assert.Equal(t, TierWarning, metric.Tier)
}

func TestDebtToAssetRatioBoundaries(t *testing.T) {
	db := newTestDB(t)
	assets, _, debts, _, health := newServices(db)
	user := newTestUser(t, db, "alice")

	_, err := assets.Create(user.ID, AssetInput{Name: "Gold", Type: models.AssetInvestment, CurrentValue: dec("1000")})
	require.NoError(t, err)
	debt, err := debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("600")})
	require.NoError(t, err)

	// exactly 0.6 still counts as Needs Attention
	metric, err := health.DebtToAssetRatio(user.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsAttention, metric.Status)

	_, err = debts.Update(debt.ID, user.ID, DebtUpdate{
		LenderName: "Bank", InitialAmount: dec("600"),
		RemainingAmount: dec("399"), Status: models.DebtActive,
	})
	require.NoError(t, err)
	metric, err = health.DebtToAssetRatio(user.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusHealthy, metric.Status)

	_, err = debts.Update(debt.ID, user.ID, DebtUpdate{
		LenderName: "Bank", InitialAmount: dec("600"),
		RemainingAmount: dec("601"), Status: models.DebtActive,
	})
	require.NoError(t, err)
	metric, err = health.DebtToAssetRatio(user.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAtRisk, metric.Status)
}

func TestSavingsRate(t *testing.T) {
	db := newTestDB(t)
	_, transactions, _, _, health := newServices(db)
	user := newTestUser(t, db, "alice")

	// no income at all: undefined, not zero
	metric, err := health.SavingsRate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotAvailable, metric.Status)
	assert.Equal(t, "bg-secondary", metric.Tier)

	_, err = transactions.Record(user.ID, TransactionInput{
		Type: models.TypeIncome, Amount: dec("1000"), Category: "Salary",
	})
	require.NoError(t, err)
	_, err = transactions.Record(user.ID, TransactionInput{
		Type: models.TypeExpense, Amount: dec("1200"), Category: "Food",
	})
	require.NoError(t, err)

	metric, err = health.SavingsRate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "-0.2000", metric.Ratio.StringFixed(4))
	assert.Equal(t, StatusOverspending, metric.Status)
	assert.Equal(t, TierDanger, metric.Tier)
}

func TestSavingsRateBands(t *testing.T) {
	db := newTestDB(t)
	_, transactions, _, _, health := newServices(db)

	cases := []struct {
		name    string
		income  string
		expense string
		status  string
	}{
		{"excellent", "1000", "700", StatusExcellent},
		{"adequate at lower bound", "1000", "900", StatusAdequate},
		{"needs improvement", "1000", "950", StatusNeedsImprovement},
		{"break even", "1000", "1000", StatusNeedsImprovement},
	}
	for i, tc := range cases {
		user := newTestUser(t, db, tc.name+string(rune('a'+i)))
		_, err := transactions.Record(user.ID, TransactionInput{
			Type: models.TypeIncome, Amount: dec(tc.income), Category: "Salary",
		})
		require.NoError(t, err)
		_, err = transactions.Record(user.ID, TransactionInput{
			Type: models.TypeExpense, Amount: dec(tc.expense), Category: "Food",
		})
		require.NoError(t, err)

		metric, err := health.SavingsRate(user.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.status, metric.Status, tc.name)
	}
}

func TestRecommendationsOverspendingAndDebt(t *testing.T) {
	db := newTestDB(t)
	_, transactions, debts, _, health := newServices(db)
	user := newTestUser(t, db, "alice")

	_, err := transactions.Record(user.ID, TransactionInput{
		Type: models.TypeIncome, Amount: dec("1000"), Category: "Salary",
	})
	require.NoError(t, err)
	_, err = transactions.Record(user.ID, TransactionInput{
		Type: models.TypeExpense, Amount: dec("1500"), Category: "Food",
	})
	require.NoError(t, err)
	_, err = debts.Create(user.ID, DebtInput{LenderName: "Bank", InitialAmount: dec("5000")})
	require.NoError(t, err)

	recs, err := health.Recommendations(user.ID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(recs), 2)

	// the rules fire in a fixed order
	assert.Equal(t, "Top Priority: Negative Cash Flow!", recs[0].Title)
	assert.Equal(t, PriorityHigh, recs[0].Priority)
	assert.Equal(t, "Warning: High Debt Level!", recs[1].Title)
	assert.Equal(t, PriorityHigh, recs[1].Priority)
}

func TestRecommendationsDominantCategory(t *testing.T) {
	db := newTestDB(t)
	_, transactions, _, _, health := newServices(db)
	user := newTestUser(t, db, "alice")

	// current-month spending with one category over 35% of the total
	now := time.Now()
	_, err := transactions.Record(user.ID, TransactionInput{
		Type: models.TypeIncome, Amount: dec("10000"), Category: "Salary", Date: now,
	})
	require.NoError(t, err)
	_, err = transactions.Record(user.ID, TransactionInput{
		Type: models.TypeExpense, Amount: dec("600"), Category: "Food", Date: now,
	})
	require.NoError(t, err)
	_, err = transactions.Record(user.ID, TransactionInput{
		Type: models.TypeExpense, Amount: dec("400"), Category: "Transport", Date: now,
	})
	require.NoError(t, err)

	recs, err := health.Recommendations(user.ID)
	require.NoError(t, err)

	var found *Recommendation
	for i := range recs {
		if recs[i].Title == "Savings Focus" {
			found = &recs[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, PriorityMedium, found.Priority)
	assert.Contains(t, found.Message, "Food")
	assert.Contains(t, found.Message, "60%")
}

func TestRecommendationsInvestment(t *testing.T) {
	db := newTestDB(t)
	assets, transactions, _, _, health := newServices(db)
	user := newTestUser(t, db, "alice")
	require.NoError(t, db.Model(user).Update("risk_profile", models.RiskAggressive).Error)

	// savings Excellent, debt ratio Healthy, no dominant category
	_, err := transactions.Record(user.ID, TransactionInput{
		Type: models.TypeIncome, Amount: dec("10000"), Category: "Salary",
	})
	require.NoError(t, err)
	for _, category := range []string{"Food", "Transport", "Rent", "Hobby"} {
		_, err = transactions.Record(user.ID, TransactionInput{
			Type: models.TypeExpense, Amount: dec("250"), Category: category,
		})
		require.NoError(t, err)
	}
	_, err = assets.Create(user.ID, AssetInput{Name: "Gold", Type: models.AssetInvestment, CurrentValue: dec("5000")})
	require.NoError(t, err)

	recs, err := health.Recommendations(user.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Investment Opportunity", recs[0].Title)
	assert.Equal(t, PriorityLow, recs[0].Priority)
	assert.Contains(t, recs[0].Message, "Aggressive")
	assert.Contains(t, recs[0].Message, "high-growth")
}

func TestRecommendationsNoneWhenQuiet(t *testing.T) {
	db := newTestDB(t)
	_, transactions, _, _, health := newServices(db)
	user := newTestUser(t, db, "alice")

	// adequate savings, no debts, balanced categories: no rule fires
	_, err := transactions.Record(user.ID, TransactionInput{
		Type: models.TypeIncome, Amount: dec("1000"), Category: "Salary",
	})
	require.NoError(t, err)
	for _, category := range []string{"Food", "Transport", "Rent"} {
		_, err = transactions.Record(user.ID, TransactionInput{
			Type: models.TypeExpense, Amount: dec("290"), Category: category,
		})
		require.NoError(t, err)
	}

	recs, err := health.Recommendations(user.ID)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
