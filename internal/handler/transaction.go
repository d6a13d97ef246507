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

// TransactionHandler serves the ledger endpoints.
type TransactionHandler struct {
	Transactions *service.TransactionService
	PageSize     int
}

func NewTransactionHandler(transactions *service.TransactionService, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TransactionHandler{Transactions: transactions, PageSize: pageSize}
}

type transactionReq struct {
	Type        string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,max=64"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
}

func (r *transactionReq) toInput() (service.TransactionInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return service.TransactionInput{}, err
	}
	in := service.TransactionInput{
		Type:        models.TransactionType(r.Type),
		Amount:      amount,
		Category:    r.Category,
		Description: r.Description,
	}
	if r.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", r.Date, time.Local)
		if err != nil {
			return service.TransactionInput{}, err
		}
		in.Date = d
	}
	return in, nil
}

type transactionResp struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      money.Format(t.Amount),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.TransactionDate.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt,
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount or date")
		return
	}

	txn, err := h.Transactions.Record(user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(txn)})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid amount or date")
		return
	}

	txn, err := h.Transactions.Update(uint(id), user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": toTransactionResp(txn)})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.Transactions.Delete(uint(id), user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "transaction deleted"})
}

// List supports ?start, ?end (YYYY-MM-DD), ?type, ?category, ?page,
// ?page_size and ?sort (date_desc default, date_asc, amount_desc,
// amount_asc).
func (h *TransactionHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.PageSize)))

	filter := service.ListFilter{
		Type:     models.TransactionType(c.Query("type")),
		Category: c.Query("category"),
		Page:     page,
		PageSize: size,
		Sort:     c.DefaultQuery("sort", "date_desc"),
	}
	if filter.Type != "" && filter.Type != models.TypeIncome && filter.Type != models.TypeExpense {
		filter.Type = ""
	}

	if startStr := c.Query("start"); startStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "start date must be YYYY-MM-DD")
			return
		}
		filter.Start = &start
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "end date must be YYYY-MM-DD")
			return
		}
		// treat the end date as inclusive: < end+1 day
		end = end.AddDate(0, 0, 1)
		filter.End = &end
	}

	txns, total, err := h.Transactions.List(user.ID, filter)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]transactionResp, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResp(&txns[i]))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}

func (h *TransactionHandler) Categories(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	categories, err := h.Transactions.DistinctCategories(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"categories": categories})
}
