package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/money"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Qualitative labels for the health metrics.
const (
	StatusHealthy          = "Healthy"
	StatusNeedsAttention   = "Needs Attention"
	StatusAtRisk           = "At Risk"
	StatusExcellent        = "Excellent"
	StatusAdequate         = "Adequate"
	StatusNeedsImprovement = "Needs Improvement"
	StatusOverspending     = "Overspending"
	StatusNotAvailable     = "N/A"
)

// Recommendation priorities.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// HealthMetric is a computed ratio plus a qualitative status and a display
// tier for progress bars.
type HealthMetric struct {
	Ratio  decimal.Decimal `json:"ratio"`
	Status string          `json:"status"`
	Tier   string          `json:"tier"`
}

// Recommendation is one advisory item.
type Recommendation struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// HealthService derives ratios and recommendations from the other
// registers. It is read-only; nothing here mutates state.
type HealthService struct {
	db           *gorm.DB
	transactions *TransactionService
	assets       *AssetService
	debts        *DebtService
}

func NewHealthService(db *gorm.DB, transactions *TransactionService, assets *AssetService, debts *DebtService) *HealthService {
	return &HealthService{db: db, transactions: transactions, assets: assets, debts: debts}
}

var (
	ratioLow      = decimal.NewFromFloat(0.4)
	ratioHigh     = decimal.NewFromFloat(0.6)
	savingsGood   = decimal.NewFromFloat(0.2)
	savingsOK     = decimal.NewFromFloat(0.1)
	categoryLimit = decimal.NewFromInt(35)
)

// DebtToAssetRatio computes total remaining debt over total asset value at
// 4 decimal places. Zero assets are special-cased: ratio 0 when there is
// also no debt, else ratio 1 at the At Risk status.
func (s *HealthService) DebtToAssetRatio(userID uint) (HealthMetric, error) {
	totalAssets, err := s.assets.TotalValue(userID)
	if err != nil {
		return HealthMetric{}, err
	}
	totalDebts, err := s.debts.TotalRemaining(userID)
	if err != nil {
		return HealthMetric{}, err
	}

	if totalAssets.IsZero() {
		if totalDebts.IsZero() {
			return HealthMetric{Ratio: decimal.Zero, Status: StatusHealthy, Tier: TierNormal}, nil
		}
		return HealthMetric{Ratio: decimal.NewFromInt(1), Status: StatusAtRisk, Tier: TierDanger}, nil
	}

	ratio, err := money.Ratio(totalDebts, totalAssets, 4)
	if err != nil {
		return HealthMetric{}, err
	}
	switch {
	case ratio.LessThan(ratioLow):
		return HealthMetric{Ratio: ratio, Status: StatusHealthy, Tier: TierNormal}, nil
	case ratio.LessThanOrEqual(ratioHigh):
		return HealthMetric{Ratio: ratio, Status: StatusNeedsAttention, Tier: TierWarning}, nil
	default:
		return HealthMetric{Ratio: ratio, Status: StatusAtRisk, Tier: TierDanger}, nil
	}
}

// SavingsRate computes (income - expense) / income over all time at 4
// decimal places; it can be negative. With no income at all the metric is
// undefined and reported as N/A rather than computed as 0/0.
func (s *HealthService) SavingsRate(userID uint) (HealthMetric, error) {
	totalIncome, err := s.transactions.SumByType(userID, models.TypeIncome, nil, nil)
	if err != nil {
		return HealthMetric{}, err
	}
	totalExpense, err := s.transactions.SumByType(userID, models.TypeExpense, nil, nil)
	if err != nil {
		return HealthMetric{}, err
	}

	if totalIncome.IsZero() {
		return HealthMetric{Ratio: decimal.Zero, Status: StatusNotAvailable, Tier: "bg-secondary"}, nil
	}

	ratio, err := money.Ratio(totalIncome.Sub(totalExpense), totalIncome, 4)
	if err != nil {
		return HealthMetric{}, err
	}
	switch {
	case ratio.GreaterThan(savingsGood):
		return HealthMetric{Ratio: ratio, Status: StatusExcellent, Tier: TierNormal}, nil
	case ratio.GreaterThanOrEqual(savingsOK):
		return HealthMetric{Ratio: ratio, Status: StatusAdequate, Tier: TierWarning}, nil
	case ratio.IsNegative():
		return HealthMetric{Ratio: ratio, Status: StatusOverspending, Tier: TierDanger}, nil
	default:
		return HealthMetric{Ratio: ratio, Status: StatusNeedsImprovement, Tier: TierDanger}, nil
	}
}

// Recommendations evaluates four independent rules in a fixed order:
// overspending, risky debt level, a dominant expense category this month,
// and an investment suggestion when everything else is healthy. Any subset
// may fire.
func (s *HealthService) Recommendations(userID uint) ([]Recommendation, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	savings, err := s.SavingsRate(userID)
	if err != nil {
		return nil, err
	}
	debtRatio, err := s.DebtToAssetRatio(userID)
	if err != nil {
		return nil, err
	}

	recommendations := []Recommendation{}

	if savings.Status == StatusOverspending {
		recommendations = append(recommendations, Recommendation{
			Title:    "Top Priority: Negative Cash Flow!",
			Message:  "Your expenses exceed your income. Review your budget and cut non-essential spending as soon as possible.",
			Priority: PriorityHigh,
		})
	}

	if debtRatio.Status == StatusAtRisk {
		recommendations = append(recommendations, Recommendation{
			Title:    "Warning: High Debt Level!",
			Message:  "Your debt-to-asset ratio is quite high. Prioritize paying off the debt with the highest interest to improve your financial health.",
			Priority: PriorityHigh,
		})
	}

	now := time.Now()
	start, end := monthRange(now.Year(), int(now.Month()))
	monthExpense, err := s.transactions.SumByType(userID, models.TypeExpense, &start, &end)
	if err != nil {
		return nil, err
	}
	if monthExpense.IsPositive() {
		summary, err := s.transactions.ExpenseSummaryByCategory(userID, &start, &end)
		if err != nil {
			return nil, err
		}
		category, amount := largestCategory(summary)
		if category != "" {
			percent, err := money.Percentage(amount, monthExpense, 0)
			if err != nil {
				return nil, err
			}
			if percent.GreaterThan(categoryLimit) {
				recommendations = append(recommendations, Recommendation{
					Title: "Savings Focus",
					Message: fmt.Sprintf("Your largest expense this month (%s%%) is in the '%s' category. Look at the details; there may be room to save.",
						percent.StringFixed(0), category),
					Priority: PriorityMedium,
				})
			}
		}
	}

	if savings.Status == StatusExcellent && debtRatio.Status == StatusHealthy {
		recommendations = append(recommendations, Recommendation{
			Title: "Investment Opportunity",
			Message: "Your finances are in great shape! Based on your risk profile (" + riskProfileName(user.RiskProfile) +
				"), this is a good time to consider investing more. " + investmentAdvice(user.RiskProfile),
			Priority: PriorityLow,
		})
	}

	return recommendations, nil
}

// largestCategory picks the category with the biggest sum; ties break on
// the lexicographically smaller name so the result is deterministic.
func largestCategory(summary map[string]decimal.Decimal) (string, decimal.Decimal) {
	best := ""
	bestAmount := decimal.Zero
	for category, amount := range summary {
		if best == "" || amount.GreaterThan(bestAmount) ||
			(amount.Equal(bestAmount) && category < best) {
			best = category
			bestAmount = amount
		}
	}
	return best, bestAmount
}

func riskProfileName(profile models.RiskProfile) string {
	switch profile {
	case models.RiskConservative:
		return "Conservative"
	case models.RiskModerate:
		return "Moderate"
	case models.RiskAggressive:
		return "Aggressive"
	default:
		return "not set"
	}
}

func investmentAdvice(profile models.RiskProfile) string {
	switch profile {
	case models.RiskConservative:
		return "Consider stable instruments such as gold or money market funds."
	case models.RiskModerate:
		return "A balanced portfolio such as mixed funds or blue chip stocks could be a good fit."
	case models.RiskAggressive:
		return "You could look at high-growth instruments such as equity funds."
	default:
		return "Set your risk profile on the profile page to get more specific advice."
	}
}
