package handler

import (
	"time"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/money"
	"github.com/sayajuli/money-management/internal/service"
	"github.com/sayajuli/money-management/internal/util"

	"github.com/gin-gonic/gin"
)

// DashboardHandler aggregates the read-side overview: current-month sums,
// register totals, health metrics, budget tracking and recommendations.
type DashboardHandler struct {
	Transactions *service.TransactionService
	Assets       *service.AssetService
	Debts        *service.DebtService
	Budgets      *service.BudgetService
	Health       *service.HealthService
}

func NewDashboardHandler(
	transactions *service.TransactionService,
	assets *service.AssetService,
	debts *service.DebtService,
	budgets *service.BudgetService,
	health *service.HealthService,
) *DashboardHandler {
	return &DashboardHandler{
		Transactions: transactions,
		Assets:       assets,
		Debts:        debts,
		Budgets:      budgets,
		Health:       health,
	}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	start := time.Date(year, now.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	monthIncome, err := h.Transactions.SumByType(user.ID, models.TypeIncome, &start, &end)
	if err != nil {
		fail(c, err)
		return
	}
	monthExpense, err := h.Transactions.SumByType(user.ID, models.TypeExpense, &start, &end)
	if err != nil {
		fail(c, err)
		return
	}
	totalAssets, err := h.Assets.TotalValue(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	totalDebts, err := h.Debts.TotalRemaining(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	monthlyInstallment, err := h.Debts.TotalMonthlyInstallment(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	debtRatio, err := h.Health.DebtToAssetRatio(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	savingsRate, err := h.Health.SavingsRate(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	recommendations, err := h.Health.Recommendations(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	tracking, err := h.Budgets.TrackingInfo(user.ID, year, month)
	if err != nil {
		fail(c, err)
		return
	}

	budgets := make([]gin.H, 0, len(tracking))
	for _, info := range tracking {
		budgets = append(budgets, gin.H{
			"category":      info.Budget.Category,
			"amount":        money.Format(info.Budget.Amount),
			"spent":         money.Format(info.Spent),
			"percent_spent": info.PercentSpent,
			"tier":          info.Tier,
		})
	}

	util.Success(c, util.Response{
		"month_income":              money.Format(monthIncome),
		"month_expense":             money.Format(monthExpense),
		"month_balance":             money.Format(monthIncome.Sub(monthExpense)),
		"total_assets":              money.Format(totalAssets),
		"total_debts":               money.Format(totalDebts),
		"total_monthly_installment": money.Format(monthlyInstallment),
		"debt_to_asset_ratio":       debtRatio,
		"savings_rate":              savingsRate,
		"recommendations":           recommendations,
		"budget_tracking":           budgets,
	})
}

func (h *DashboardHandler) HealthMetrics(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	debtRatio, err := h.Health.DebtToAssetRatio(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	savingsRate, err := h.Health.SavingsRate(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	recommendations, err := h.Health.Recommendations(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"debt_to_asset_ratio": debtRatio,
		"savings_rate":        savingsRate,
		"recommendations":     recommendations,
	})
}
