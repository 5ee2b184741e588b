package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/service"
)

// CalendarDateLayout is the day format of calendar events.
const CalendarDateLayout = "2006-01-02"

// CalendarEvent is the total of one transaction type on one day.
type CalendarEvent struct {
	Date   string
	Type   service.TransactionType
	Amount decimal.Decimal
}

// AggregateTransactionsForCalendar sums transactions sharing a day and a
// type into one event. Events keep first-seen order; undated transactions
// cannot be placed and are skipped.
func AggregateTransactionsForCalendar(transactions []service.Transaction) []CalendarEvent {
	index := make(map[string]int)
	events := []CalendarEvent{}

	for _, t := range transactions {
		if !t.HasValidDate() || !t.Type.Valid() {
			continue
		}

		date := t.Date.Format(CalendarDateLayout)
		kind := t.Type.Canonical()
		key := date + "|" + string(kind)

		if i, ok := index[key]; ok {
			events[i].Amount = events[i].Amount.Add(t.Amount)
			continue
		}
		index[key] = len(events)
		events = append(events, CalendarEvent{Date: date, Type: kind, Amount: t.Amount})
	}

	return events
}
