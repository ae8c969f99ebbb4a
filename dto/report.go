package dto

import "time"

type AnalysisMode string

const (
	ModeSingleMonth AnalysisMode = "single_month"
	ModeMultiMonth  AnalysisMode = "multi_month"
)

// SummaryStats covers the whole analysed period (the trailing 30 days in
// single-month mode, all months otherwise).
type SummaryStats struct {
	PeriodStart        time.Time    `json:"period_start"`
	PeriodEnd          time.Time    `json:"period_end"`
	DaysCovered        int          `json:"days_covered"`
	MonthsCovered      int          `json:"months_covered,omitempty"`
	TotalDebit         float64      `json:"total_debit"`
	TotalCredit        float64      `json:"total_credit"`
	NetFlow            float64      `json:"net_flow"`
	AvgDebit           float64      `json:"avg_debit"`
	AvgCredit          float64      `json:"avg_credit"`
	MedianDebit        float64      `json:"median_debit"`
	MedianCredit       float64      `json:"median_credit"`
	MinDebit           float64      `json:"min_debit"`
	MinCredit          float64      `json:"min_credit"`
	LargestTransaction *Transaction `json:"largest_transaction,omitempty"`
	TotalTransactions  int          `json:"total_transactions"`
	DebitCount         int          `json:"debit_count"`
	CreditCount        int          `json:"credit_count"`
	AvgDailySpend      float64      `json:"avg_daily_spend"`
	AvgMonthlySpend    float64      `json:"avg_monthly_spend,omitempty"`
}

type MerchantStat struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Average  float64 `json:"average"`
}

type CategoryStat struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Average  float64 `json:"average"`
}

type WeekdayStat struct {
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type TimeOfDayStat struct {
	Period  string  `json:"period"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type FrequencyStats struct {
	AvgPerDay       float64 `json:"avg_per_day"`
	MaxPerDay       int     `json:"max_per_day"`
	MinPerDay       int     `json:"min_per_day"`
	SilentDays      int     `json:"silent_days"`
	MostActiveDay   string  `json:"most_active_day"`
	MostActiveCount int     `json:"most_active_count"`
}

type SavingsInsights struct {
	SmallTotal        float64        `json:"small_total"`
	SmallCount        int            `json:"small_count"`
	SmallAverage      float64        `json:"small_average"`
	FrequentMerchants []MerchantStat `json:"frequent_merchants"`
}

type MonthlyStat struct {
	Month   string  `json:"month"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Median  float64 `json:"median"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
}

type TrendStat struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	Trend     string  `json:"trend"`
}

type MonthlyMerchant struct {
	Month    string  `json:"month"`
	Rank     int     `json:"rank"`
	Merchant string  `json:"merchant"`
	Amount   float64 `json:"amount"`
}

type MonthlyBiggest struct {
	Month       string      `json:"month"`
	Transaction Transaction `json:"transaction"`
}

// MonthlyFlow is the debit/credit pair per month that feeds the grouped bar chart.
type MonthlyFlow struct {
	Month  string  `json:"month"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// AnalysisReport aggregates every table produced for one statement. Sections
// not applicable to the chosen mode stay nil/empty.
type AnalysisReport struct {
	Mode                AnalysisMode      `json:"mode"`
	Summary             SummaryStats      `json:"summary"`
	TopMerchants        []MerchantStat    `json:"top_merchants"`
	SpendingCategories  []CategoryStat    `json:"spending_categories"`
	WeekdaySpending     []WeekdayStat     `json:"weekday_spending,omitempty"`
	TimeOfDaySpending   []TimeOfDayStat   `json:"time_of_day_spending,omitempty"`
	Frequency           *FrequencyStats   `json:"transaction_frequency,omitempty"`
	TopExpensive        []Transaction     `json:"top_expensive,omitempty"`
	Savings             SavingsInsights   `json:"savings_insights"`
	MonthlyBreakdown    []MonthlyStat     `json:"monthly_breakdown,omitempty"`
	Trends              []TrendStat       `json:"spending_trends,omitempty"`
	TopMerchantsMonthly []MonthlyMerchant `json:"top_merchants_monthly,omitempty"`
	BiggestPerMonth     []MonthlyBiggest  `json:"biggest_per_month,omitempty"`
	MonthlyFlows        []MonthlyFlow     `json:"monthly_flows,omitempty"`
}
