package service

import (
	"context"
	"net/url"
	"time"
)

const (
	reportsResource = "reports"

	MessageReportRange = "Both start date and end date are required."
)

// ReportService reads stored and ad hoc reports from the report service.
type ReportService struct {
	backend Requester
}

// NewReportService creates a new ReportService.
func NewReportService(backend Requester) *ReportService {
	return &ReportService{backend: backend}
}

// GetReport returns a stored report, usually a monthly one.
func (s *ReportService) GetReport(ctx context.Context, id string) (Report, error) {
	if id == "" {
		return Report{}, NewValidationError(MessageRequiredFields, "id")
	}

	var w reportWire
	if err := s.backend.Get(ctx, resourcePath(reportsResource, id), nil, &w); err != nil {
		return Report{}, err
	}
	return w.toReport(), nil
}

// GenerateCustomReport asks the report service for a report over [start, end].
func (s *ReportService) GenerateCustomReport(ctx context.Context, start, end time.Time) (Report, error) {
	if start.IsZero() || end.IsZero() {
		return Report{}, NewValidationError(MessageReportRange, "startDate", "endDate")
	}

	query := url.Values{
		"startDate": {wireDate(start)},
		"endDate":   {wireDate(end)},
	}

	var w reportWire
	if err := s.backend.Get(ctx, reportsResource+"/custom", query, &w); err != nil {
		return Report{}, err
	}
	return w.toReport(), nil
}
