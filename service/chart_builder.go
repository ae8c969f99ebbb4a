package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
)

// ReportChart is one rendered PNG, keyed by the snake_case name that becomes
// its workbook sheet.
type ReportChart struct {
	Name string
	PNG  []byte
}

// BuildCharts renders the chart set for the report's analysis mode. Charts
// whose underlying series are too small to draw are skipped rather than
// failing the run.
func BuildCharts(report *dto.AnalysisReport, txns []dto.Transaction) []ReportChart {
	if report.Mode == dto.ModeSingleMonth {
		return buildSingleMonthCharts(txns)
	}
	return buildMultiMonthCharts(report, txns)
}

func buildSingleMonthCharts(txns []dto.Transaction) []ReportChart {
	var charts []ReportChart

	if c, err := dailySpendChart(txns); err == nil {
		charts = append(charts, c)
	}
	if c, err := debitVsCreditChart(txns); err == nil {
		charts = append(charts, c)
	}
	return charts
}

func buildMultiMonthCharts(report *dto.AnalysisReport, txns []dto.Transaction) []ReportChart {
	var charts []ReportChart

	if c, err := monthlyDebitCreditChart(report.MonthlyFlows); err == nil {
		charts = append(charts, c)
	}
	if c, err := spendingTrendChart(report.MonthlyFlows); err == nil {
		charts = append(charts, c)
	}
	if c, err := cumulativeSpendingChart(txns); err == nil {
		charts = append(charts, c)
	}
	if c, err := categoryDistributionChart(report.SpendingCategories); err == nil {
		charts = append(charts, c)
	}
	if c, err := debitCreditRatioChart(report.Summary); err == nil {
		charts = append(charts, c)
	}
	return charts
}

func dailySpendChart(txns []dto.Transaction) (ReportChart, error) {
	totals := make(map[string]float64)
	for _, t := range txns {
		if t.Type == dto.TypeDebit {
			totals[t.Date.Format("Jan 02")] += t.Amount
		}
	}
	days := make([]string, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		di, _ := time.Parse("Jan 02", days[i])
		dj, _ := time.Parse("Jan 02", days[j])
		return di.Before(dj)
	})

	bars := make([]chart.Value, 0, len(days))
	for _, day := range days {
		bars = append(bars, chart.Value{Label: day, Value: totals[day]})
	}
	return renderBarChart("daily_spend", "Daily Spending in Last 30 Days", bars)
}

func debitVsCreditChart(txns []dto.Transaction) (ReportChart, error) {
	var debit, credit float64
	for _, t := range txns {
		switch t.Type {
		case dto.TypeDebit:
			debit += t.Amount
		case dto.TypeCredit:
			credit += t.Amount
		}
	}
	bars := []chart.Value{
		{Label: "Debit", Value: debit},
		{Label: "Credit", Value: credit},
	}
	return renderBarChart("debit_vs_credit", "Debit vs Credit in Last 30 Days", bars)
}

func monthlyDebitCreditChart(flows []dto.MonthlyFlow) (ReportChart, error) {
	var bars []chart.Value
	for _, flow := range flows {
		bars = append(bars,
			chart.Value{Label: flow.Month + " Dr", Value: flow.Debit},
			chart.Value{Label: flow.Month + " Cr", Value: flow.Credit},
		)
	}
	return renderBarChart("monthly_debit_credit", "Monthly Debit vs Credit Comparison", bars)
}

func spendingTrendChart(flows []dto.MonthlyFlow) (ReportChart, error) {
	var xs []time.Time
	var ys []float64
	for _, flow := range flows {
		month, err := time.Parse("January 2006", flow.Month)
		if err != nil {
			continue
		}
		xs = append(xs, month)
		ys = append(ys, flow.Debit)
	}
	return renderTimeSeries("spending_trend", "Monthly Spending Trend", xs, ys)
}

func cumulativeSpendingChart(txns []dto.Transaction) (ReportChart, error) {
	var debits []dto.Transaction
	for _, t := range txns {
		if t.Type == dto.TypeDebit {
			debits = append(debits, t)
		}
	}
	sort.SliceStable(debits, func(i, j int) bool { return debits[i].Date.Before(debits[j].Date) })

	var xs []time.Time
	var ys []float64
	var running float64
	for _, t := range debits {
		running += t.Amount
		xs = append(xs, t.Date)
		ys = append(ys, running)
	}
	return renderTimeSeries("cumulative_spending", "Cumulative Spending Over Time", xs, ys)
}

func categoryDistributionChart(categories []dto.CategoryStat) (ReportChart, error) {
	var bars []chart.Value
	for _, cat := range categories {
		bars = append(bars, chart.Value{Label: cat.Category, Value: cat.Total})
	}
	return renderBarChart("category_distribution", "Spending Distribution by Category", bars)
}

func debitCreditRatioChart(summary dto.SummaryStats) (ReportChart, error) {
	if summary.TotalDebit <= 0 && summary.TotalCredit <= 0 {
		return ReportChart{}, fmt.Errorf("no amounts to chart")
	}

	var values []chart.Value
	if summary.TotalDebit > 0 {
		values = append(values, chart.Value{Label: "Debit", Value: summary.TotalDebit})
	}
	if summary.TotalCredit > 0 {
		values = append(values, chart.Value{Label: "Credit", Value: summary.TotalCredit})
	}

	pie := chart.PieChart{
		Title:  "Overall Debit vs Credit Ratio",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return ReportChart{}, err
	}
	return ReportChart{Name: "debit_credit_ratio", PNG: buf.Bytes()}, nil
}

func renderBarChart(name, title string, bars []chart.Value) (ReportChart, error) {
	if len(bars) == 0 {
		return ReportChart{}, fmt.Errorf("no bars to chart")
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return ReportChart{}, err
	}
	return ReportChart{Name: name, PNG: buf.Bytes()}, nil
}

func renderTimeSeries(name, title string, xs []time.Time, ys []float64) (ReportChart, error) {
	// go-chart cannot derive a range from fewer than two points
	if len(xs) < 2 {
		return ReportChart{}, fmt.Errorf("not enough points to chart")
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
		Series: []chart.Series{
			chart.TimeSeries{XValues: xs, YValues: ys},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return ReportChart{}, err
	}
	return ReportChart{Name: name, PNG: buf.Bytes()}, nil
}
