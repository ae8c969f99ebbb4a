package service

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
)

// ExcelExporter writes one workbook per analysed statement: the full
// transaction list, one sheet per report table and one sheet per chart image.
type ExcelExporter struct {
	outputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{outputDir: outputDir}
}

type sheetTable struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// Export writes the workbook and returns its path. The filename carries a
// timestamp so repeated runs never clobber each other.
func (e *ExcelExporter) Export(txns []dto.Transaction, report *dto.AnalysisReport, charts []ReportChart, now time.Time) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const txnSheet = "All Transactions"
	if err := f.SetSheetName("Sheet1", txnSheet); err != nil {
		return "", err
	}

	used := map[string]bool{strings.ToLower(txnSheet): true}

	if err := writeTransactions(f, txnSheet, txns); err != nil {
		return "", err
	}

	for _, table := range reportTables(report) {
		name := uniqueSheetName(table.name, used)
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
		if err := writeTable(f, name, table); err != nil {
			return "", err
		}
	}

	for _, c := range charts {
		base := titleCase(c.Name) + " Chart"
		if len(base) > 31 {
			base = base[:28] + " Ch"
		}
		name := uniqueSheetName(base, used)
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
		pic := &excelize.Picture{Extension: ".png", File: c.PNG}
		if err := f.AddPictureFromBytes(name, "B2", pic); err != nil {
			return "", fmt.Errorf("embed chart %s: %w", c.Name, err)
		}
	}

	for _, name := range f.GetSheetList() {
		if err := f.SetColWidth(name, "A", "Z", 20); err != nil {
			return "", err
		}
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("statement_analysis_%s.xlsx", now.Format("20060102_150405")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	log.Printf("Saved analysis workbook: %s", path)
	return path, nil
}

func writeTransactions(f *excelize.File, sheet string, txns []dto.Transaction) error {
	headers := []interface{}{"Date", "Time", "Merchant", "Type", "Amount", "Transaction ID", "Account"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, t := range txns {
		row := []interface{}{
			t.Date.Format("2006-01-02"),
			t.Time,
			t.Merchant,
			string(t.Type),
			t.Amount,
			t.TransactionID,
			t.Account,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, table sheetTable) error {
	headerRow := make([]interface{}, len(table.headers))
	for i, h := range table.headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return err
	}
	for i := range table.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &table.rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// reportTables flattens the report into ordered sheets, mirroring the tables
// the analysis produces per mode.
func reportTables(report *dto.AnalysisReport) []sheetTable {
	var tables []sheetTable

	tables = append(tables, summaryTable(report))

	if len(report.TopMerchants) > 0 {
		t := sheetTable{name: "Top Merchants", headers: []string{"Merchant", "Total Spent (INR)", "Transactions", "Average (INR)"}}
		for _, m := range report.TopMerchants {
			t.rows = append(t.rows, []interface{}{m.Merchant, m.Total, m.Count, m.Average})
		}
		tables = append(tables, t)
	}

	if len(report.SpendingCategories) > 0 {
		t := sheetTable{name: "Spending Categories", headers: []string{"Category", "Total Amount (INR)", "Transaction Count", "Average (INR)"}}
		for _, c := range report.SpendingCategories {
			t.rows = append(t.rows, []interface{}{c.Category, c.Total, c.Count, c.Average})
		}
		tables = append(tables, t)
	}

	if len(report.WeekdaySpending) > 0 {
		t := sheetTable{name: "Weekday Spending", headers: []string{"Weekday", "Total Spent (INR)", "Transaction Count", "Average (INR)"}}
		for _, w := range report.WeekdaySpending {
			t.rows = append(t.rows, []interface{}{w.Weekday, w.Total, w.Count, w.Average})
		}
		tables = append(tables, t)
	}

	if len(report.TimeOfDaySpending) > 0 {
		t := sheetTable{name: "Time Of Day Spending", headers: []string{"Time Period", "Total Spent (INR)", "Transaction Count", "Average (INR)"}}
		for _, p := range report.TimeOfDaySpending {
			t.rows = append(t.rows, []interface{}{p.Period, p.Total, p.Count, p.Average})
		}
		tables = append(tables, t)
	}

	if report.Frequency != nil {
		t := sheetTable{name: "Transaction Frequency", headers: []string{"Metric", "Value"}}
		t.rows = append(t.rows,
			[]interface{}{"Average Transactions per Day", fmt.Sprintf("%.1f", report.Frequency.AvgPerDay)},
			[]interface{}{"Maximum Transactions in a Day", report.Frequency.MaxPerDay},
			[]interface{}{"Minimum Transactions in a Day", report.Frequency.MinPerDay},
			[]interface{}{"Days with No Transactions", report.Frequency.SilentDays},
			[]interface{}{"Most Active Day", fmt.Sprintf("%s (%d transactions)", report.Frequency.MostActiveDay, report.Frequency.MostActiveCount)},
		)
		tables = append(tables, t)
	}

	if len(report.TopExpensive) > 0 {
		t := sheetTable{name: "Top Expensive Transactions", headers: []string{"Date", "Merchant", "Amount", "Time"}}
		for _, txn := range report.TopExpensive {
			t.rows = append(t.rows, []interface{}{txn.Date.Format("2006-01-02"), txn.Merchant, txn.Amount, txn.Time})
		}
		tables = append(tables, t)
	}

	tables = append(tables, savingsTable(report.Savings))

	if len(report.MonthlyBreakdown) > 0 {
		t := sheetTable{name: "Monthly Detailed", headers: []string{"Month", "Total Spent (INR)", "Transactions", "Average (INR)", "Median (INR)", "Max (INR)", "Min (INR)"}}
		for _, m := range report.MonthlyBreakdown {
			t.rows = append(t.rows, []interface{}{m.Month, m.Total, m.Count, m.Average, m.Median, m.Max, m.Min})
		}
		tables = append(tables, t)
	}

	if len(report.Trends) > 0 {
		t := sheetTable{name: "Spending Trends", headers: []string{"From", "To", "Change (INR)", "Change (%)", "Trend"}}
		for _, tr := range report.Trends {
			t.rows = append(t.rows, []interface{}{tr.From, tr.To, tr.Change, tr.ChangePct, tr.Trend})
		}
		tables = append(tables, t)
	}

	if len(report.TopMerchantsMonthly) > 0 {
		t := sheetTable{name: "Top Merchants Monthly", headers: []string{"Month", "Rank", "Merchant", "Amount (INR)"}}
		for _, m := range report.TopMerchantsMonthly {
			t.rows = append(t.rows, []interface{}{m.Month, m.Rank, m.Merchant, m.Amount})
		}
		tables = append(tables, t)
	}

	if len(report.BiggestPerMonth) > 0 {
		t := sheetTable{name: "Biggest Transactions", headers: []string{"Month", "Amount (INR)", "Merchant", "Date", "Type"}}
		for _, b := range report.BiggestPerMonth {
			t.rows = append(t.rows, []interface{}{b.Month, b.Transaction.Amount, b.Transaction.Merchant, b.Transaction.Date.Format("2006-01-02"), string(b.Transaction.Type)})
		}
		tables = append(tables, t)
	}

	return tables
}

func summaryTable(report *dto.AnalysisReport) sheetTable {
	s := report.Summary
	name := "Summary"
	if report.Mode == dto.ModeMultiMonth {
		name = "Overall Summary"
	}

	t := sheetTable{name: name, headers: []string{"Metric", "Value"}}
	t.rows = append(t.rows,
		[]interface{}{"Analysis Period", fmt.Sprintf("%s to %s", s.PeriodStart.Format("2006-01-02"), s.PeriodEnd.Format("2006-01-02"))},
		[]interface{}{"Days Covered", s.DaysCovered},
	)
	if s.MonthsCovered > 0 {
		t.rows = append(t.rows, []interface{}{"Total Months Covered", s.MonthsCovered})
	}
	t.rows = append(t.rows,
		[]interface{}{"Total Debit", formatINR(s.TotalDebit)},
		[]interface{}{"Total Credit", formatINR(s.TotalCredit)},
		[]interface{}{"Net Cash Flow", formatINR(s.NetFlow) + flowLabel(s.NetFlow)},
		[]interface{}{"Average Debit", formatINR(s.AvgDebit)},
		[]interface{}{"Average Credit", formatINR(s.AvgCredit)},
		[]interface{}{"Median Debit", formatINR(s.MedianDebit)},
		[]interface{}{"Median Credit", formatINR(s.MedianCredit)},
		[]interface{}{"Minimum Debit", formatINR(s.MinDebit)},
		[]interface{}{"Minimum Credit", formatINR(s.MinCredit)},
	)
	if s.LargestTransaction != nil {
		t.rows = append(t.rows, []interface{}{
			"Largest Transaction",
			fmt.Sprintf("%s at %s on %s", formatINR(s.LargestTransaction.Amount), s.LargestTransaction.Merchant, s.LargestTransaction.Date.Format("2006-01-02")),
		})
	}
	t.rows = append(t.rows,
		[]interface{}{"Total Transactions", s.TotalTransactions},
		[]interface{}{"Debit Transactions", s.DebitCount},
		[]interface{}{"Credit Transactions", s.CreditCount},
		[]interface{}{"Average Daily Spending", formatINR(s.AvgDailySpend)},
	)
	if s.AvgMonthlySpend > 0 {
		t.rows = append(t.rows, []interface{}{"Average Monthly Spending", formatINR(s.AvgMonthlySpend)})
	}
	return t
}

func savingsTable(s dto.SavingsInsights) sheetTable {
	t := sheetTable{name: "Savings Insights", headers: []string{"Insight", "Value"}}
	t.rows = append(t.rows,
		[]interface{}{"Small Transactions (<₹100) Total", formatINR(s.SmallTotal)},
		[]interface{}{"Small Transaction Count", s.SmallCount},
	)
	if s.SmallCount > 0 {
		t.rows = append(t.rows, []interface{}{"Small Transaction Average", formatINR(s.SmallAverage)})
	}
	for _, m := range s.FrequentMerchants {
		t.rows = append(t.rows, []interface{}{
			fmt.Sprintf("Frequent Merchant: %s", m.Merchant),
			fmt.Sprintf("%d transactions, %s total", m.Count, formatINR(m.Total)),
		})
	}
	return t
}

func flowLabel(netFlow float64) string {
	switch {
	case netFlow > 0:
		return " (Surplus)"
	case netFlow < 0:
		return " (Deficit)"
	default:
		return " (Balanced)"
	}
}

// uniqueSheetName enforces Excel's 31-char sheet limit and deduplicates
// case-insensitively with a numeric suffix.
func uniqueSheetName(base string, used map[string]bool) string {
	name := clipSheetName(base, 31)
	for i := 1; used[strings.ToLower(name)]; i++ {
		suffix := fmt.Sprintf(" %d", i)
		name = clipSheetName(base, 31-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = true
	return name
}

func clipSheetName(name string, max int) string {
	if len(name) > max {
		return name[:max]
	}
	return name
}

func titleCase(snake string) string {
	words := strings.Split(snake, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
