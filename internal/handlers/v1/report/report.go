package report

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type Summary struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	NetSavings    string `json:"netSavings"`
}

type Report struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Summary   *Summary `json:"summary,omitempty" doc:"Absent when the report carries no transaction summary"`
}

// PieChart is spending per category. Labels, Values and Colors are parallel.
type PieChart struct {
	Labels []string `json:"labels"`
	Values []string `json:"values"`
	Colors []string `json:"colors"`
}

type Dataset struct {
	Label  string   `json:"label"`
	Values []string `json:"values"`
	Color  string   `json:"color"`
}

// BarChart is spending per date, one stacked dataset per category.
type BarChart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type ReportView struct {
	State        string                `json:"state"`
	Report       *Report               `json:"report,omitempty"`
	Categories   PieChart              `json:"categories"`
	Dates        BarChart              `json:"dates"`
	Notification *respond.Notification `json:"notification,omitempty"`
}

type ReportOutput struct {
	Body ReportView
}

func toReportView(v controller.ReportsView) ReportView {
	out := ReportView{
		State: string(v.State),
		Categories: PieChart{
			Labels: nonNil(v.Categories.Labels),
			Values: amounts(v.Categories.Values),
			Colors: nonNil(v.Categories.Colors),
		},
		Dates: BarChart{
			Labels:   nonNil(v.Dates.Labels),
			Datasets: make([]Dataset, len(v.Dates.Datasets)),
		},
		Notification: respond.FromNotification(v.Notification),
	}
	for i, ds := range v.Dates.Datasets {
		out.Dates.Datasets[i] = Dataset{Label: ds.Label, Values: amounts(ds.Values), Color: ds.Color}
	}

	if r := v.Report; r != nil {
		out.Report = &Report{
			ID:        r.ID,
			Type:      r.Type,
			StartDate: respond.FormatDate(r.Period.StartDate),
			EndDate:   respond.FormatDate(r.Period.EndDate),
		}
		if s := r.TransactionSummary; s != nil {
			out.Report.Summary = &Summary{
				TotalIncome:   s.TotalIncome.String(),
				TotalExpenses: s.TotalExpenses.String(),
				NetSavings:    s.NetSavings.String(),
			}
		}
	}
	return out
}

func amounts(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
