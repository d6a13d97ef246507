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

// DebtHandler serves the debt register endpoints.
type DebtHandler struct {
	Debts    *service.DebtService
	PageSize int
}

func NewDebtHandler(debts *service.DebtService, pageSize int) *DebtHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &DebtHandler{Debts: debts, PageSize: pageSize}
}

type debtReq struct {
	LenderName         string `json:"lender_name" binding:"required,max=100"`
	InitialAmount      string `json:"initial_amount" binding:"required"`
	MonthlyInstallment string `json:"monthly_installment"`
	DueDayOfMonth      *int   `json:"due_day_of_month"`
	DueDate            string `json:"due_date"` // YYYY-MM-DD, optional
}

func (r *debtReq) toInput() (service.DebtInput, error) {
	initial, err := decimal.NewFromString(r.InitialAmount)
	if err != nil {
		return service.DebtInput{}, err
	}
	in := service.DebtInput{
		LenderName:    r.LenderName,
		InitialAmount: initial,
		DueDayOfMonth: r.DueDayOfMonth,
	}
	if r.MonthlyInstallment != "" {
		installment, err := decimal.NewFromString(r.MonthlyInstallment)
		if err != nil {
			return service.DebtInput{}, err
		}
		in.MonthlyInstallment = &installment
	}
	if r.DueDate != "" {
		d, err := time.ParseInLocation("2006-01-02", r.DueDate, time.Local)
		if err != nil {
			return service.DebtInput{}, err
		}
		in.DueDate = &d
	}
	return in, nil
}

type debtResp struct {
	ID                 uint   `json:"id"`
	LenderName         string `json:"lender_name"`
	InitialAmount      string `json:"initial_amount"`
	RemainingAmount    string `json:"remaining_amount"`
	MonthlyInstallment string `json:"monthly_installment,omitempty"`
	DueDayOfMonth      *int   `json:"due_day_of_month,omitempty"`
	DueDate            string `json:"due_date,omitempty"`
	Status             string `json:"status"`
}

func toDebtResp(d *models.Debt) debtResp {
	resp := debtResp{
		ID:              d.ID,
		LenderName:      d.LenderName,
		InitialAmount:   money.Format(d.InitialAmount),
		RemainingAmount: money.Format(d.RemainingAmount),
		DueDayOfMonth:   d.DueDayOfMonth,
		Status:          string(d.Status),
	}
	if d.MonthlyInstallment != nil {
		resp.MonthlyInstallment = money.Format(*d.MonthlyInstallment)
	}
	if d.DueDate != nil {
		resp.DueDate = d.DueDate.Format("2006-01-02")
	}
	return resp
}

// List supports ?status, ?year, ?month, ?page and ?page_size; totals are
// always computed over the full register, not the page.
func (h *DebtHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	status := models.DebtStatus(c.Query("status"))
	if status != "" && status != models.DebtActive && status != models.DebtPaid {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "status must be ACTIVE or PAID")
		return
	}

	debts, total, err := h.Debts.ListPaged(user.ID, service.DebtListFilter{
		Year:     year,
		Month:    month,
		Status:   status,
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		fail(c, err)
		return
	}

	totalRemaining, err := h.Debts.TotalRemaining(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	totalInstallment, err := h.Debts.TotalMonthlyInstallment(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]debtResp, 0, len(debts))
	for i := range debts {
		items = append(items, toDebtResp(&debts[i]))
	}
	util.Success(c, util.Response{
		"items":                     items,
		"total":                     total,
		"page":                      page,
		"size":                      size,
		"total_remaining":           money.Format(totalRemaining),
		"total_monthly_installment": money.Format(totalInstallment),
	})
}

func (h *DebtHandler) Get(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	debt, err := h.Debts.GetByID(uint(id), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": toDebtResp(debt)})
}

func (h *DebtHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	var req debtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount or date")
		return
	}

	debt, err := h.Debts.Create(user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": toDebtResp(debt)})
}

type debtUpdateReq struct {
	debtReq
	RemainingAmount string `json:"remaining_amount" binding:"required"`
	Status          string `json:"status" binding:"required,oneof=ACTIVE PAID"`
}

func (h *DebtHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	var req debtUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount or date")
		return
	}
	remaining, err := decimal.NewFromString(req.RemainingAmount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid remaining amount")
		return
	}

	debt, err := h.Debts.Update(uint(id), user.ID, service.DebtUpdate{
		LenderName:         in.LenderName,
		InitialAmount:      in.InitialAmount,
		RemainingAmount:    remaining,
		MonthlyInstallment: in.MonthlyInstallment,
		DueDayOfMonth:      in.DueDayOfMonth,
		DueDate:            in.DueDate,
		Status:             models.DebtStatus(req.Status),
	})
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": toDebtResp(debt)})
}

func (h *DebtHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	if err := h.Debts.Delete(uint(id), user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "debt deleted"})
}

func (h *DebtHandler) Pay(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req struct {
		Amount string `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount")
		return
	}

	debt, err := h.Debts.Pay(uint(id), user.ID, amount)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": toDebtResp(debt)})
}
