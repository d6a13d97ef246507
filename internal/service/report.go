package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sayajuli/money-management/internal/models"
	"github.com/sayajuli/money-management/internal/money"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// MonthlyReport is the exact input the report renderers need: the period's
// transactions plus the computed totals.
type MonthlyReport struct {
	Year         int
	Month        int
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
	Rows         []ReportRow
}

// ReportRow is one transaction line in the report.
type ReportRow struct {
	Date     time.Time
	Category string
	Type     models.TransactionType
	Amount   decimal.Decimal
}

// ReportService builds monthly report data and renders it to a document.
type ReportService struct {
	transactions *TransactionService
	currency     string
}

func NewReportService(transactions *TransactionService, currency string) *ReportService {
	if currency == "" {
		currency = "IDR"
	}
	return &ReportService{transactions: transactions, currency: currency}
}

// MonthlyReport collects the period's transactions and totals.
func (s *ReportService) MonthlyReport(userID uint, year, month int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidArgument)
	}
	start, end := monthRange(year, month)
	txns, err := s.transactions.ListForPeriod(userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Year: year, Month: month}
	report.IncomeTotal = decimal.Zero
	report.ExpenseTotal = decimal.Zero
	for _, t := range txns {
		if t.Type == models.TypeIncome {
			report.IncomeTotal = report.IncomeTotal.Add(t.Amount)
		} else {
			report.ExpenseTotal = report.ExpenseTotal.Add(t.Amount)
		}
		report.Rows = append(report.Rows, ReportRow{
			Date:     t.TransactionDate,
			Category: t.Category,
			Type:     t.Type,
			Amount:   t.Amount,
		})
	}
	report.NetTotal = report.IncomeTotal.Sub(report.ExpenseTotal)
	return report, nil
}

// Title returns the localized report heading, e.g. "Financial Report -
// January 2026".
func (r *MonthlyReport) Title() string {
	monthName := time.Month(r.Month).String()
	return fmt.Sprintf("Financial Report - %s %d", monthName, r.Year)
}

func (s *ReportService) formatCurrency(v decimal.Decimal) string {
	return s.currency + " " + money.Format(v)
}

func formatReportDate(t time.Time) string {
	return t.Format("02-01-2006")
}

// RenderXLSX writes the report as an Excel workbook.
func (s *ReportService) RenderXLSX(report *MonthlyReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{report.Title()},
		{},
		{"Total Income", s.formatCurrency(report.IncomeTotal)},
		{"Total Expense", s.formatCurrency(report.ExpenseTotal)},
		{"Net Result", s.formatCurrency(report.NetTotal)},
		{},
		{"Date", "Category", "Type", "Amount"},
	}
	for _, r := range report.Rows {
		rows = append(rows, []interface{}{
			formatReportDate(r.Date), r.Category, string(r.Type), s.formatCurrency(r.Amount),
		})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("build cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write sheet row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// RenderCSV writes the report as CSV with the same columns as the workbook.
func (s *ReportService) RenderCSV(report *MonthlyReport, w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := [][]string{
		{report.Title()},
		{"Total Income", s.formatCurrency(report.IncomeTotal)},
		{"Total Expense", s.formatCurrency(report.ExpenseTotal)},
		{"Net Result", s.formatCurrency(report.NetTotal)},
		{"Date", "Category", "Type", "Amount"},
	}
	for _, row := range header {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	for _, r := range report.Rows {
		row := []string{formatReportDate(r.Date), r.Category, string(r.Type), s.formatCurrency(r.Amount)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return writer.Error()
}
