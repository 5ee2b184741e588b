package service

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportPeriod struct {
	StartDate time.Time
	EndDate   time.Time
}

// TransactionSummary is the spending breakdown a report carries.
// SpendingByDate is keyed by the date label the report service uses.
type TransactionSummary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetSavings         decimal.Decimal
	SpendingByCategory map[string]decimal.Decimal
	SpendingByDate     map[string]map[string]decimal.Decimal
}

type Report struct {
	ID                 string
	Type               string
	Period             ReportPeriod
	TransactionSummary *TransactionSummary
}

type reportWire struct {
	identifier
	Type   string `json:"type"`
	Period struct {
		StartDate timestamp `json:"startDate"`
		EndDate   timestamp `json:"endDate"`
	} `json:"period"`
	TransactionSummary *struct {
		TotalIncome        decimal.Decimal                       `json:"totalIncome"`
		TotalExpenses      decimal.Decimal                       `json:"totalExpenses"`
		NetSavings         decimal.Decimal                       `json:"netSavings"`
		SpendingByCategory map[string]decimal.Decimal            `json:"spendingByCategory"`
		SpendingByDate     map[string]map[string]decimal.Decimal `json:"spendingByDate"`
	} `json:"transactionSummary"`
}

func (w reportWire) toReport() Report {
	r := Report{
		ID:   w.value(),
		Type: w.Type,
		Period: ReportPeriod{
			StartDate: w.Period.StartDate.Time,
			EndDate:   w.Period.EndDate.Time,
		},
	}
	if s := w.TransactionSummary; s != nil {
		r.TransactionSummary = &TransactionSummary{
			TotalIncome:        s.TotalIncome,
			TotalExpenses:      s.TotalExpenses,
			NetSavings:         s.NetSavings,
			SpendingByCategory: s.SpendingByCategory,
			SpendingByDate:     s.SpendingByDate,
		}
	}
	return r
}
