package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/money"
	"github.com/sayajuli/money-management/internal/service"
	"github.com/sayajuli/money-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler serves the budget tracker endpoints.
type BudgetHandler struct {
	Budgets *service.BudgetService
}

func NewBudgetHandler(budgets *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets}
}

type budgetReq struct {
	Category string `json:"category" binding:"required,max=64"`
	Amount   string `json:"amount" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Month    int    `json:"month" binding:"required"`
}

type budgetResp struct {
	ID       uint   `json:"id"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
}

func toBudgetResp(b *models.Budget) budgetResp {
	return budgetResp{
		ID:       b.ID,
		Category: b.Category,
		Amount:   money.Format(b.Amount),
		Year:     b.Year,
		Month:    b.Month,
	}
}

// CreateOrUpdate upserts the budget for (category, year, month).
func (h *BudgetHandler) CreateOrUpdate(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	budget, err := h.Budgets.CreateOrUpdate(user.ID, service.BudgetInput{
		Category: req.Category,
		Amount:   amount,
		Year:     req.Year,
		Month:    req.Month,
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"budget": toBudgetResp(budget)})
}

// periodFromQuery reads ?year and ?month, defaulting to the current month.
func periodFromQuery(c *gin.Context) (int, int) {
	now := time.Now()
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, month
}

func (h *BudgetHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	year, month := periodFromQuery(c)

	budgets, err := h.Budgets.ListForPeriod(user.ID, year, month)
	if err != nil {
		fail(c, err)
		return
	}
	items := make([]budgetResp, 0, len(budgets))
	for i := range budgets {
		items = append(items, toBudgetResp(&budgets[i]))
	}
	util.Success(c, util.Response{
		"items": items,
		"year":  year,
		"month": month,
	})
}

func (h *BudgetHandler) Tracking(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	year, month := periodFromQuery(c)

	infos, err := h.Budgets.TrackingInfo(user.ID, year, month)
	if err != nil {
		fail(c, err)
		return
	}

	type trackingResp struct {
		Budget       budgetResp `json:"budget"`
		Spent        string     `json:"spent"`
		PercentSpent int        `json:"percent_spent"`
		Tier         string     `json:"tier"`
	}
	items := make([]trackingResp, 0, len(infos))
	for i := range infos {
		items = append(items, trackingResp{
			Budget:       toBudgetResp(&infos[i].Budget),
			Spent:        money.Format(infos[i].Spent),
			PercentSpent: infos[i].PercentSpent,
			Tier:         infos[i].Tier,
		})
	}
	util.Success(c, util.Response{
		"items": items,
		"year":  year,
		"month": month,
	})
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	if err := h.Budgets.Delete(uint(id), user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "budget deleted"})
}
