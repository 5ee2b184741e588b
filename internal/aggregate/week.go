package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/service"
)

const daysPerWeek = 7

// WeekRange is a Monday to Sunday window. Start and End keep the time of
// day of the reference date they were derived from.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the seven days of the week, Monday first.
func (w WeekRange) Days() []time.Time {
	days := make([]time.Time, daysPerWeek)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether t falls on one of the week's days.
func (w WeekRange) Contains(t time.Time) bool {
	for _, day := range w.Days() {
		if IsSameDay(day, t) {
			return true
		}
	}
	return false
}

type WeeklySummaryDay struct {
	Date   time.Time
	Spent  decimal.Decimal
	Earned decimal.Decimal
}

// ComputeWeekRange returns the Monday-anchored week containing ref. Sunday
// belongs to the week that started six days earlier.
func ComputeWeekRange(ref time.Time) WeekRange {
	dow := int(ref.Weekday())
	diffToMonday := 1 - dow
	if dow == 0 {
		diffToMonday = -6
	}

	start := ref.AddDate(0, 0, diffToMonday)
	return WeekRange{
		Start: start,
		End:   start.AddDate(0, 0, daysPerWeek-1),
	}
}

// ComputeWeeklySummary always returns seven days. Transactions without a
// usable date or outside the week are ignored.
func ComputeWeeklySummary(week WeekRange, transactions []service.Transaction) []WeeklySummaryDay {
	summary := make([]WeeklySummaryDay, daysPerWeek)
	for i, day := range week.Days() {
		summary[i] = WeeklySummaryDay{Date: day, Spent: decimal.Zero, Earned: decimal.Zero}
	}

	for _, t := range transactions {
		if !t.HasValidDate() {
			continue
		}
		for i := range summary {
			if !IsSameDay(summary[i].Date, t.Date) {
				continue
			}
			switch {
			case t.Type.IsExpense():
				summary[i].Spent = summary[i].Spent.Add(t.Amount)
			case t.Type.IsIncome():
				summary[i].Earned = summary[i].Earned.Add(t.Amount)
			}
			break
		}
	}

	return summary
}

// IsSameDay compares calendar fields only, each date in its own location.
func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TransactionsOn returns the transactions dated on day, in input order.
func TransactionsOn(transactions []service.Transaction, day time.Time) []service.Transaction {
	out := []service.Transaction{}
	for _, t := range transactions {
		if t.HasValidDate() && IsSameDay(t.Date, day) {
			out = append(out, t)
		}
	}
	return out
}
