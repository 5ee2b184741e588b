package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type reportsController interface {
	LoadByID(ctx context.Context, id string) (controller.ReportsView, error)
	Generate(ctx context.Context, start, end time.Time) (controller.ReportsView, error)
}

type Handler struct {
	Reports reportsController
}

// NewHandler creates a new Handler for the report endpoints.
func NewHandler(c reportsController) *Handler {
	return &Handler{Reports: c}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports/{id}",
		Summary:     "Get a report",
		Description: "Loads a stored report and its spending charts.",
		Tags:        []string{"Reports"},
	}, h.get)

	huma.Register(api, huma.Operation{
		OperationID: "generate-report",
		Method:      http.MethodGet,
		Path:        "/v1/reports",
		Summary:     "Generate a custom report",
		Description: "Builds a report over a date range. Both dates are required.",
		Tags:        []string{"Reports"},
	}, h.generate)
}

type GetReportInput struct {
	ID string `path:"id"`
}

func (h *Handler) get(ctx context.Context, input *GetReportInput) (*ReportOutput, error) {
	respond.AddData(ctx, "reportId", input.ID)
	view, err := h.Reports.LoadByID(ctx, input.ID)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &ReportOutput{Body: toReportView(view)}, nil
}

type GenerateReportInput struct {
	StartDate string `query:"startDate" doc:"YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"YYYY-MM-DD"`
}

func (h *Handler) generate(ctx context.Context, input *GenerateReportInput) (*ReportOutput, error) {
	start, err := respond.ParseDate("startDate", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := respond.ParseDate("endDate", input.EndDate)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, huma.NewError(http.StatusBadRequest, "endDate must not be before startDate")
	}

	stopTimer := respond.Timer(ctx, "generateReportMs")
	view, err := h.Reports.Generate(ctx, start, end)
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}
	return &ReportOutput{Body: toReportView(view)}, nil
}
