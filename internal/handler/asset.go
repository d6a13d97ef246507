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

// AssetHandler serves the asset register endpoints.
type AssetHandler struct {
	Assets       *service.AssetService
	Transactions *service.TransactionService
}

func NewAssetHandler(assets *service.AssetService, transactions *service.TransactionService) *AssetHandler {
	return &AssetHandler{Assets: assets, Transactions: transactions}
}

type assetReq struct {
	Name            string `json:"name" binding:"required,max=64"`
	Type            string `json:"type" binding:"required,oneof=CASH INVESTMENT PROPERTY VEHICLE OTHER"`
	CurrentValue    string `json:"current_value" binding:"required"`
	AcquisitionDate string `json:"acquisition_date"` // YYYY-MM-DD, optional
}

func (r *assetReq) toInput() (service.AssetInput, error) {
	value, err := decimal.NewFromString(r.CurrentValue)
	if err != nil {
		return service.AssetInput{}, err
	}
	in := service.AssetInput{
		Name:         r.Name,
		Type:         models.AssetType(r.Type),
		CurrentValue: value,
	}
	if r.AcquisitionDate != "" {
		d, err := time.ParseInLocation("2006-01-02", r.AcquisitionDate, time.Local)
		if err != nil {
			return service.AssetInput{}, err
		}
		in.AcquisitionDate = &d
	}
	return in, nil
}

type assetResp struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	CurrentValue    string `json:"current_value"`
	AcquisitionDate string `json:"acquisition_date,omitempty"`
}

func toAssetResp(a *models.Asset) assetResp {
	resp := assetResp{
		ID:           a.ID,
		Name:         a.Name,
		Type:         string(a.Type),
		CurrentValue: money.Format(a.CurrentValue),
	}
	if a.AcquisitionDate != nil {
		resp.AcquisitionDate = a.AcquisitionDate.Format("2006-01-02")
	}
	return resp
}

func (h *AssetHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	assets, err := h.Assets.ListForOwner(user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	total, err := h.Assets.TotalValue(user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]assetResp, 0, len(assets))
	for i := range assets {
		items = append(items, toAssetResp(&assets[i]))
	}
	util.Success(c, util.Response{
		"items":       items,
		"total_value": money.Format(total),
	})
}

func (h *AssetHandler) Get(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	asset, err := h.Assets.GetByID(uint(id), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"asset": toAssetResp(asset)})
}

// Create is the "record an asset purchase" flow: an increase in value of an
// existing asset becomes an automatic expense.
func (h *AssetHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	var req assetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid value or date")
		return
	}

	asset, err := h.Transactions.RecordAssetPurchase(user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"asset": toAssetResp(asset)})
}

func (h *AssetHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	var req assetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid value or date")
		return
	}

	asset, err := h.Assets.Update(uint(id), user.ID, in)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"asset": toAssetResp(asset)})
}

func (h *AssetHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}
	if err := h.Assets.Delete(uint(id), user.ID); err != nil {
		fail(c, err)
		return
	}
	util.Success(c, util.Response{"message": "asset deleted"})
}
