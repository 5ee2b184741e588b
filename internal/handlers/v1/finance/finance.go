// Package finance exposes the weekly transactions page.
package finance

import (
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
	"github.com/carson-networks/finance-client/internal/handlers/v1/transaction"
)

type DayGroup struct {
	DateKey      string                    `json:"dateKey" doc:"Calendar day, e.g. Mon Jan 01 2024"`
	Transactions []transaction.Transaction `json:"transactions"`
}

type SummaryDay struct {
	Date   string `json:"date" doc:"RFC3339 day"`
	Spent  string `json:"spent" doc:"Sum of expenses on the day"`
	Earned string `json:"earned" doc:"Sum of income on the day"`
}

type SelectedDay struct {
	Date         string                    `json:"date"`
	Transactions []transaction.Transaction `json:"transactions"`
}

// WeekView is the API model of the finance page.
type WeekView struct {
	State         string                    `json:"state"`
	ReferenceDate string                    `json:"referenceDate"`
	WeekStart     string                    `json:"weekStart" doc:"Monday of the week"`
	WeekEnd       string                    `json:"weekEnd" doc:"Sunday of the week"`
	Transactions  []transaction.Transaction `json:"transactions"`
	Groups        []DayGroup                `json:"groups"`
	WeeklySummary []SummaryDay              `json:"weeklySummary" doc:"Always seven days, Monday first"`
	SelectedDay   *SelectedDay              `json:"selectedDay,omitempty"`
	Notification  *respond.Notification     `json:"notification,omitempty"`
}

// WeekOutput is the Huma output shared by the finance operations.
type WeekOutput struct {
	Body WeekView
}

func toWeekView(v controller.FinanceView) WeekView {
	out := WeekView{
		State:         string(v.State),
		ReferenceDate: respond.FormatDate(v.ReferenceDate),
		WeekStart:     respond.FormatDate(v.Week.Start),
		WeekEnd:       respond.FormatDate(v.Week.End),
		Transactions:  transaction.FromServiceList(v.Transactions),
		Groups:        make([]DayGroup, len(v.Groups)),
		WeeklySummary: make([]SummaryDay, len(v.WeeklySummary)),
		Notification:  respond.FromNotification(v.Notification),
	}
	for i, g := range v.Groups {
		out.Groups[i] = DayGroup{DateKey: g.DateKey, Transactions: transaction.FromServiceList(g.Transactions)}
	}
	for i, d := range v.WeeklySummary {
		out.WeeklySummary[i] = SummaryDay{
			Date:   respond.FormatDate(d.Date),
			Spent:  d.Spent.String(),
			Earned: d.Earned.String(),
		}
	}
	if v.SelectedDay != nil {
		out.SelectedDay = &SelectedDay{
			Date:         respond.FormatDate(v.SelectedDay.Date),
			Transactions: transaction.FromServiceList(v.SelectedDay.Transactions),
		}
	}
	return out
}
