package controller

import (
	"context"
	"time"

	"github.com/carson-networks/finance-client/internal/chart"
	"github.com/carson-networks/finance-client/internal/service"
)

const MessageReportFailed = "Failed to generate report. Please try again."

type reportSource interface {
	GetReport(ctx context.Context, id string) (service.Report, error)
	GenerateCustomReport(ctx context.Context, start, end time.Time) (service.Report, error)
}

type ReportsView struct {
	State        State
	Report       *service.Report
	Categories   chart.CategorySeries
	Dates        chart.DateSeries
	Notification *Notification
}

// Reports loads one report at a time and turns its spending summary into
// chart series.
type Reports struct {
	core

	source reportSource

	report *service.Report
}

// NewReports creates a new Reports controller.
func NewReports(source reportSource, opts Options) *Reports {
	r := &Reports{source: source}
	r.init("reports", opts)
	return r
}

func (r *Reports) LoadByID(ctx context.Context, id string) (ReportsView, error) {
	return r.load(ctx, func(ctx context.Context) (service.Report, error) {
		return r.source.GetReport(ctx, id)
	})
}

// Generate builds a report over [start, end]. Both dates are required.
func (r *Reports) Generate(ctx context.Context, start, end time.Time) (ReportsView, error) {
	if start.IsZero() || end.IsZero() {
		r.mu.Lock()
		defer r.mu.Unlock()
		failure := r.rejectLocked(service.NewValidationError(service.MessageReportRange, "startDate", "endDate"))
		return r.viewLocked(), failure
	}
	return r.load(ctx, func(ctx context.Context) (service.Report, error) {
		return r.source.GenerateCustomReport(ctx, start, end)
	})
}

func (r *Reports) load(ctx context.Context, fetch func(context.Context) (service.Report, error)) (ReportsView, error) {
	r.mu.Lock()
	seq := r.beginLoadLocked()
	r.mu.Unlock()

	report, err := fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.seq.IsCurrent(seq) {
		return r.viewLocked(), nil
	}
	if err != nil {
		r.report = nil
		failure := r.loadFailedLocked(err, MessageReportFailed)
		return r.viewLocked(), failure
	}

	r.report = &report
	r.state = StateLoaded
	return r.viewLocked(), nil
}

func (r *Reports) View() ReportsView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Reports) viewLocked() ReportsView {
	view := ReportsView{
		State:        r.state,
		Categories:   chart.BuildCategorySeries(nil),
		Dates:        chart.BuildDateSeries(nil),
		Notification: r.activeNotificationLocked(),
	}
	if r.report == nil {
		return view
	}

	report := *r.report
	view.Report = &report
	if summary := report.TransactionSummary; summary != nil {
		view.Categories = chart.BuildCategorySeries(summary.SpendingByCategory)
		view.Dates = chart.BuildDateSeries(summary.SpendingByDate)
	}
	return view
}
