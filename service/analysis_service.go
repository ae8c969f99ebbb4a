package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ruchika0201/PhonePe-GPay-Statement-Analyzer/dto"
)

// AnalysisService turns a parsed transaction sequence into report tables.
// Statements spanning at most 30 days get the detailed single-month treatment
// (weekday, time-of-day and frequency patterns); longer statements get the
// month-over-month treatment.
type AnalysisService struct{}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

const singleMonthSpanDays = 30

var weekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var timeOfDayOrder = []string{
	"Morning (5AM-12PM)",
	"Afternoon (12PM-5PM)",
	"Evening (5PM-9PM)",
	"Night (9PM-5AM)",
	"Unknown",
}

var categoryOrder = []string{"Under ₹100", "₹100-500", "₹500-1000", "₹1000-5000", "Above ₹5000"}

// Analyze picks the analysis mode from the statement's date span. The
// reference time anchors the trailing 30-day window in single-month mode.
func (s *AnalysisService) Analyze(txns []dto.Transaction, now time.Time) *dto.AnalysisReport {
	if len(txns) == 0 {
		return &dto.AnalysisReport{Mode: dto.ModeSingleMonth}
	}

	start, end := dateRange(txns)
	spanDays := int(end.Sub(start).Hours()/24) + 1

	if spanDays <= singleMonthSpanDays {
		return s.analyzeSingleMonth(txns, now)
	}
	return s.analyzeMultiMonth(txns)
}

func (s *AnalysisService) analyzeSingleMonth(txns []dto.Transaction, now time.Time) *dto.AnalysisReport {
	cutoff := now.AddDate(0, 0, -singleMonthSpanDays)
	var window []dto.Transaction
	for _, t := range txns {
		if !t.Date.Before(cutoff) {
			window = append(window, t)
		}
	}

	report := &dto.AnalysisReport{Mode: dto.ModeSingleMonth}
	if len(window) == 0 {
		return report
	}

	report.Summary = summarize(window)
	if report.Summary.TotalDebit > 0 {
		report.Summary.AvgDailySpend = round2(report.Summary.TotalDebit / singleMonthSpanDays)
	}
	report.TopMerchants = topMerchants(window, 10)
	report.SpendingCategories = spendingCategories(window)
	report.WeekdaySpending = weekdaySpending(window)
	report.TimeOfDaySpending = timeOfDaySpending(window)
	report.Frequency = transactionFrequency(window)
	report.TopExpensive = topExpensive(window, 10)
	report.Savings = savingsInsights(window, 5)

	return report
}

func (s *AnalysisService) analyzeMultiMonth(txns []dto.Transaction) *dto.AnalysisReport {
	report := &dto.AnalysisReport{Mode: dto.ModeMultiMonth}

	months := monthKeys(txns)

	report.Summary = summarize(txns)
	report.Summary.MonthsCovered = len(months)
	if len(months) > 0 {
		report.Summary.AvgMonthlySpend = round2(report.Summary.TotalDebit / float64(len(months)))
	}
	if report.Summary.DaysCovered > 0 {
		report.Summary.AvgDailySpend = round2(report.Summary.TotalDebit / float64(report.Summary.DaysCovered))
	}

	report.TopMerchants = topMerchants(txns, 10)
	report.SpendingCategories = spendingCategories(txns)
	report.Savings = savingsInsights(txns, 10)
	report.MonthlyBreakdown = monthlyBreakdown(txns, months)
	report.Trends = spendingTrends(report.MonthlyBreakdown)
	report.TopMerchantsMonthly = topMerchantsPerMonth(txns, months, 3)
	report.BiggestPerMonth = biggestPerMonth(txns, months)
	report.MonthlyFlows = monthlyFlows(txns, months)

	return report
}

func summarize(txns []dto.Transaction) dto.SummaryStats {
	var debits, credits []float64
	var totalDebit, totalCredit float64
	var largest *dto.Transaction

	for i, t := range txns {
		switch t.Type {
		case dto.TypeDebit:
			debits = append(debits, t.Amount)
			totalDebit += t.Amount
		case dto.TypeCredit:
			credits = append(credits, t.Amount)
			totalCredit += t.Amount
		}
		if largest == nil || t.Amount > largest.Amount {
			largest = &txns[i]
		}
	}

	start, end := dateRange(txns)

	return dto.SummaryStats{
		PeriodStart:        start,
		PeriodEnd:          end,
		DaysCovered:        int(end.Sub(start).Hours()/24) + 1,
		TotalDebit:         round2(totalDebit),
		TotalCredit:        round2(totalCredit),
		NetFlow:            round2(totalCredit - totalDebit),
		AvgDebit:           round2(mean(debits)),
		AvgCredit:          round2(mean(credits)),
		MedianDebit:        round2(median(debits)),
		MedianCredit:       round2(median(credits)),
		MinDebit:           round2(minOf(debits)),
		MinCredit:          round2(minOf(credits)),
		LargestTransaction: largest,
		TotalTransactions:  len(txns),
		DebitCount:         len(debits),
		CreditCount:        len(credits),
	}
}

func topMerchants(txns []dto.Transaction, n int) []dto.MerchantStat {
	stats := merchantStats(txns)
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Merchant < stats[j].Merchant
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// merchantStats groups debit transactions by merchant.
func merchantStats(txns []dto.Transaction) []dto.MerchantStat {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range txns {
		if t.Type != dto.TypeDebit {
			continue
		}
		totals[t.Merchant] += t.Amount
		counts[t.Merchant]++
	}

	stats := make([]dto.MerchantStat, 0, len(totals))
	for merchant, total := range totals {
		stats = append(stats, dto.MerchantStat{
			Merchant: merchant,
			Total:    round2(total),
			Count:    counts[merchant],
			Average:  round2(total / float64(counts[merchant])),
		})
	}
	return stats
}

func categorize(amount float64) string {
	switch {
	case amount < 100:
		return categoryOrder[0]
	case amount < 500:
		return categoryOrder[1]
	case amount < 1000:
		return categoryOrder[2]
	case amount < 5000:
		return categoryOrder[3]
	default:
		return categoryOrder[4]
	}
}

func spendingCategories(txns []dto.Transaction) []dto.CategoryStat {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range txns {
		if t.Type != dto.TypeDebit {
			continue
		}
		cat := categorize(t.Amount)
		totals[cat] += t.Amount
		counts[cat]++
	}

	var stats []dto.CategoryStat
	for _, cat := range categoryOrder {
		if counts[cat] == 0 {
			continue
		}
		stats = append(stats, dto.CategoryStat{
			Category: cat,
			Total:    round2(totals[cat]),
			Count:    counts[cat],
			Average:  round2(totals[cat] / float64(counts[cat])),
		})
	}
	return stats
}

func weekdaySpending(txns []dto.Transaction) []dto.WeekdayStat {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range txns {
		if t.Type != dto.TypeDebit {
			continue
		}
		day := t.Date.Weekday().String()
		totals[day] += t.Amount
		counts[day]++
	}

	var stats []dto.WeekdayStat
	for _, day := range weekdayOrder {
		if counts[day] == 0 {
			continue
		}
		stats = append(stats, dto.WeekdayStat{
			Weekday: day,
			Total:   round2(totals[day]),
			Count:   counts[day],
			Average: round2(totals[day] / float64(counts[day])),
		})
	}
	return stats
}

func timeOfDaySpending(txns []dto.Transaction) []dto.TimeOfDayStat {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, t := range txns {
		if t.Type != dto.TypeDebit {
			continue
		}
		period := timeOfDayBucket(t.Time)
		totals[period] += t.Amount
		counts[period]++
	}

	var stats []dto.TimeOfDayStat
	for _, period := range timeOfDayOrder {
		if counts[period] == 0 {
			continue
		}
		stats = append(stats, dto.TimeOfDayStat{
			Period:  period,
			Total:   round2(totals[period]),
			Count:   counts[period],
			Average: round2(totals[period] / float64(counts[period])),
		})
	}
	return stats
}

// timeOfDayBucket tolerates both statement clock shapes: PhonePe's spaced
// "10:30 AM" and Google Pay's glued "9:15AM", plus bare 24-hour times.
func timeOfDayBucket(clock string) string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return "Unknown"
	}

	var parsed time.Time
	var err error
	for _, layout := range []string{"3:04 PM", "3:04PM", "15:04"} {
		if parsed, err = time.Parse(layout, clock); err == nil {
			break
		}
	}
	if err != nil {
		return "Unknown"
	}

	hour := parsed.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return timeOfDayOrder[0]
	case hour >= 12 && hour < 17:
		return timeOfDayOrder[1]
	case hour >= 17 && hour < 21:
		return timeOfDayOrder[2]
	default:
		return timeOfDayOrder[3]
	}
}

func transactionFrequency(txns []dto.Transaction) *dto.FrequencyStats {
	perDay := make(map[string]int)
	for _, t := range txns {
		perDay[t.Date.Format("2006-01-02")]++
	}
	if len(perDay) == 0 {
		return nil
	}

	stats := &dto.FrequencyStats{MinPerDay: len(txns)}
	for day, count := range perDay {
		if count > stats.MaxPerDay || (count == stats.MaxPerDay && day < stats.MostActiveDay) {
			stats.MaxPerDay = count
			stats.MostActiveDay = day
			stats.MostActiveCount = count
		}
		if count < stats.MinPerDay {
			stats.MinPerDay = count
		}
	}
	stats.AvgPerDay = round2(float64(len(txns)) / float64(len(perDay)))
	stats.SilentDays = singleMonthSpanDays - len(perDay)

	return stats
}

func topExpensive(txns []dto.Transaction, n int) []dto.Transaction {
	var debits []dto.Transaction
	for _, t := range txns {
		if t.Type == dto.TypeDebit {
			debits = append(debits, t)
		}
	}
	sort.SliceStable(debits, func(i, j int) bool { return debits[i].Amount > debits[j].Amount })
	if len(debits) > n {
		debits = debits[:n]
	}
	return debits
}

func savingsInsights(txns []dto.Transaction, frequentN int) dto.SavingsInsights {
	insights := dto.SavingsInsights{}
	for _, t := range txns {
		if t.Type == dto.TypeDebit && t.Amount < 100 {
			insights.SmallTotal += t.Amount
			insights.SmallCount++
		}
	}
	insights.SmallTotal = round2(insights.SmallTotal)
	if insights.SmallCount > 0 {
		insights.SmallAverage = round2(insights.SmallTotal / float64(insights.SmallCount))
	}

	frequent := merchantStats(txns)
	sort.Slice(frequent, func(i, j int) bool {
		if frequent[i].Count != frequent[j].Count {
			return frequent[i].Count > frequent[j].Count
		}
		return frequent[i].Merchant < frequent[j].Merchant
	})
	if len(frequent) > frequentN {
		frequent = frequent[:frequentN]
	}
	insights.FrequentMerchants = frequent

	return insights
}

func monthlyBreakdown(txns []dto.Transaction, months []string) []dto.MonthlyStat {
	var stats []dto.MonthlyStat
	for _, month := range months {
		var amounts []float64
		var total float64
		for _, t := range txns {
			if t.Type == dto.TypeDebit && monthKey(t.Date) == month {
				amounts = append(amounts, t.Amount)
				total += t.Amount
			}
		}
		if len(amounts) == 0 {
			continue
		}
		stats = append(stats, dto.MonthlyStat{
			Month:   monthLabel(month),
			Total:   round2(total),
			Count:   len(amounts),
			Average: round2(total / float64(len(amounts))),
			Median:  round2(median(amounts)),
			Max:     round2(maxOf(amounts)),
			Min:     round2(minOf(amounts)),
		})
	}
	return stats
}

func spendingTrends(breakdown []dto.MonthlyStat) []dto.TrendStat {
	var trends []dto.TrendStat
	for i := 1; i < len(breakdown); i++ {
		prev, cur := breakdown[i-1], breakdown[i]
		change := cur.Total - prev.Total
		var pct float64
		if prev.Total > 0 {
			pct = change / prev.Total * 100
		}
		trend := "Same"
		if change > 0 {
			trend = "Increase"
		} else if change < 0 {
			trend = "Decrease"
		}
		trends = append(trends, dto.TrendStat{
			From:      prev.Month,
			To:        cur.Month,
			Change:    round2(change),
			ChangePct: round1(pct),
			Trend:     trend,
		})
	}
	return trends
}

func topMerchantsPerMonth(txns []dto.Transaction, months []string, n int) []dto.MonthlyMerchant {
	var result []dto.MonthlyMerchant
	for _, month := range months {
		var monthTxns []dto.Transaction
		for _, t := range txns {
			if monthKey(t.Date) == month {
				monthTxns = append(monthTxns, t)
			}
		}
		top := topMerchants(monthTxns, n)
		for rank, stat := range top {
			result = append(result, dto.MonthlyMerchant{
				Month:    monthLabel(month),
				Rank:     rank + 1,
				Merchant: stat.Merchant,
				Amount:   stat.Total,
			})
		}
	}
	return result
}

func biggestPerMonth(txns []dto.Transaction, months []string) []dto.MonthlyBiggest {
	var result []dto.MonthlyBiggest
	for _, month := range months {
		var biggest *dto.Transaction
		for i, t := range txns {
			if monthKey(t.Date) != month {
				continue
			}
			if biggest == nil || t.Amount > biggest.Amount {
				biggest = &txns[i]
			}
		}
		if biggest != nil {
			result = append(result, dto.MonthlyBiggest{Month: monthLabel(month), Transaction: *biggest})
		}
	}
	return result
}

func monthlyFlows(txns []dto.Transaction, months []string) []dto.MonthlyFlow {
	var flows []dto.MonthlyFlow
	for _, month := range months {
		flow := dto.MonthlyFlow{Month: monthLabel(month)}
		for _, t := range txns {
			if monthKey(t.Date) != month {
				continue
			}
			switch t.Type {
			case dto.TypeDebit:
				flow.Debit += t.Amount
			case dto.TypeCredit:
				flow.Credit += t.Amount
			}
		}
		flow.Debit = round2(flow.Debit)
		flow.Credit = round2(flow.Credit)
		flows = append(flows, flow)
	}
	return flows
}

func monthKey(d time.Time) string { return d.Format("2006-01") }

func monthLabel(key string) string {
	d, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return d.Format("January 2006")
}

func monthKeys(txns []dto.Transaction) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, t := range txns {
		key := monthKey(t.Date)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func dateRange(txns []dto.Transaction) (time.Time, time.Time) {
	start, end := txns[0].Date, txns[0].Date
	for _, t := range txns {
		if t.Date.Before(start) {
			start = t.Date
		}
		if t.Date.After(end) {
			end = t.Date
		}
	}
	return start, end
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
	}
	return min
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}

func round2(v float64) float64 {
	return roundTo(v, 100)
}

func round1(v float64) float64 {
	return roundTo(v, 10)
}

func roundTo(v float64, factor float64) float64 {
	if v < 0 {
		return -roundTo(-v, factor)
	}
	scaled := v * factor
	return float64(int64(scaled+0.5)) / factor
}

func formatINR(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
