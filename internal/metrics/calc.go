package metrics

import (
	"time"

	"mybnb/internal/models"
)

// Trend labels for period-over-period comparison.
const (
	TrendIncrease = "increase"
	TrendDecrease = "decrease"
	TrendNoChange = "no change"
)

// MethodCounts holds per-channel booking counts. Only the three known
// channels are tracked.
type MethodCounts struct {
	Online   int `json:"online"`
	Phone    int `json:"phone"`
	InPerson int `json:"in-person"`
}

// MethodPercentages mirrors MethodCounts as shares of the total.
type MethodPercentages struct {
	Online   float64 `json:"online"`
	Phone    float64 `json:"phone"`
	InPerson float64 `json:"in-person"`
}

// MethodBreakdown is the booking-method distribution for a date range.
type MethodBreakdown struct {
	TotalRecords  int               `json:"totalRecords"`
	BookingCounts MethodCounts      `json:"bookingCounts"`
	Percentage    MethodPercentages `json:"percentage"`
}

// MonthPoint is one month of the revenue/expense chart series.
type MonthPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// PeriodStats is the dashboard stat-card payload: the four current-period
// metrics plus a change/trend pair for each against the preceding period of
// identical length.
type PeriodStats struct {
	NumberOfBookings int     `json:"number_of_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalExpenses    float64 `json:"total_expenses"`
	TotalProfit      float64 `json:"total_profit"`

	NumberOfBookingsChange float64 `json:"number_of_bookings_change"`
	NumberOfBookingsTrend  string  `json:"number_of_bookings_trend"`
	TotalRevenueChange     float64 `json:"total_revenue_change"`
	TotalRevenueTrend      string  `json:"total_revenue_trend"`
	TotalExpensesChange    float64 `json:"total_expenses_change"`
	TotalExpensesTrend     string  `json:"total_expenses_trend"`
	TotalProfitChange      float64 `json:"total_profit_change"`
	TotalProfitTrend       string  `json:"total_profit_trend"`
}

// BreakdownBookings counts bookings per method and converts counts to
// percentages. Unknown methods are ignored entirely rather than bucketed, so
// per-method counts can sum to less than TotalRecords when dirty data is
// present. An empty input yields all zeros, never NaN.
func BreakdownBookings(bookings []*models.Booking) *MethodBreakdown {
	breakdown := &MethodBreakdown{TotalRecords: len(bookings)}

	for _, b := range bookings {
		switch b.BookingMethod {
		case models.BookingMethodOnline:
			breakdown.BookingCounts.Online++
		case models.BookingMethodPhone:
			breakdown.BookingCounts.Phone++
		case models.BookingMethodInPerson:
			breakdown.BookingCounts.InPerson++
		}
	}

	if breakdown.TotalRecords > 0 {
		total := float64(breakdown.TotalRecords)
		breakdown.Percentage.Online = float64(breakdown.BookingCounts.Online) / total * 100
		breakdown.Percentage.Phone = float64(breakdown.BookingCounts.Phone) / total * 100
		breakdown.Percentage.InPerson = float64(breakdown.BookingCounts.InPerson) / total * 100
	}

	return breakdown
}

// BuildMonthlySeries buckets booking revenue (by created_at) and expense
// amounts (by expense date) into calendar months. The result always has
// exactly twelve entries, Jan through Dec, so chart axes stay fully populated
// however sparse the data is.
func BuildMonthlySeries(bookings []*models.Booking, expenses []*models.Expense) []MonthPoint {
	revenueByMonth := map[time.Month]float64{}
	for _, b := range bookings {
		revenueByMonth[b.CreatedAt.Month()] += b.TotalAmount
	}

	expensesByMonth := map[time.Month]float64{}
	for _, e := range expenses {
		expensesByMonth[e.Date.Month()] += e.Amount
	}

	series := make([]MonthPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		series = append(series, MonthPoint{
			Month:    m.String()[:3],
			Revenue:  revenueByMonth[m],
			Expenses: expensesByMonth[m],
		})
	}
	return series
}

// HistoryWindow derives the comparison period for [start, end]: the
// immediately preceding window of identical length, ending exactly where the
// current one begins. No gap, no overlap.
func HistoryWindow(start, end time.Time) (historyStart, historyEnd time.Time) {
	return start.Add(-end.Sub(start)), start
}

// Change reports the percentage change from previous to current. When there
// is no prior baseline (previous == 0) it reports the raw current value
// instead; that is inherited behavior the dashboard depends on, not a bug.
func Change(current, previous float64) float64 {
	if previous == 0 {
		return current
	}
	return (current - previous) * 100.0 / previous
}

// Trend reports the qualitative direction of current versus previous.
func Trend(current, previous float64) string {
	switch {
	case current > previous:
		return TrendIncrease
	case current < previous:
		return TrendDecrease
	default:
		return TrendNoChange
	}
}

// periodTotals is one period's raw aggregates.
type periodTotals struct {
	bookings int
	revenue  float64
	expenses float64
	profit   float64
}

func totalsFrom(bookings []*models.Booking, expenses []*models.Expense) periodTotals {
	t := periodTotals{bookings: len(bookings)}
	for _, b := range bookings {
		t.revenue += b.TotalAmount
	}
	for _, e := range expenses {
		t.expenses += e.Amount
	}
	t.profit = t.revenue - t.expenses
	return t
}

// comparePeriods combines current and history totals into the stat-card
// payload.
func comparePeriods(current, history periodTotals) *PeriodStats {
	return &PeriodStats{
		NumberOfBookings: current.bookings,
		TotalRevenue:     current.revenue,
		TotalExpenses:    current.expenses,
		TotalProfit:      current.profit,

		NumberOfBookingsChange: Change(float64(current.bookings), float64(history.bookings)),
		NumberOfBookingsTrend:  Trend(float64(current.bookings), float64(history.bookings)),
		TotalRevenueChange:     Change(current.revenue, history.revenue),
		TotalRevenueTrend:      Trend(current.revenue, history.revenue),
		TotalExpensesChange:    Change(current.expenses, history.expenses),
		TotalExpensesTrend:     Trend(current.expenses, history.expenses),
		TotalProfitChange:      Change(current.profit, history.profit),
		TotalProfitTrend:       Trend(current.profit, history.profit),
	}
}
