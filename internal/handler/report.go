package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sayajuli/money-management/internal/service"
	"github.com/sayajuli/money-management/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves monthly report downloads.
type ReportHandler struct {
	Reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

func (h *ReportHandler) monthlyReport(c *gin.Context) *service.MonthlyReport {
	user := currentUser(c)
	if user == nil {
		return nil
	}

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid year")
		return nil
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
		return nil
	}

	report, err := h.Reports.MonthlyReport(user.ID, year, month)
	if err != nil {
		fail(c, err)
		return nil
	}
	return report
}

// DownloadXLSX streams the monthly report as an Excel workbook.
func (h *ReportHandler) DownloadXLSX(c *gin.Context) {
	report := h.monthlyReport(c)
	if report == nil {
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%04d-%02d.xlsx\"", report.Year, report.Month))

	if err := h.Reports.RenderXLSX(report, c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render report")
	}
}

// DownloadCSV streams the monthly report as CSV.
func (h *ReportHandler) DownloadCSV(c *gin.Context) {
	report := h.monthlyReport(c)
	if report == nil {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"report_%04d-%02d.csv\"", report.Year, report.Month))

	if err := h.Reports.RenderCSV(report, c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to render report")
	}
}
