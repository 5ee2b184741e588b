package finance

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

// GetWeekInput is the Huma input for reading the finance page.
type GetWeekInput struct {
	Date string `query:"date" doc:"Any day of the wanted week, YYYY-MM-DD; the current week is kept when empty"`
	Day  string `query:"day" doc:"Narrow the view to this day, YYYY-MM-DD"`
}

type weekLoader interface {
	Load(ctx context.Context) (controller.FinanceView, error)
	SetDate(ctx context.Context, date time.Time) (controller.FinanceView, error)
	ShowDay(day time.Time) controller.FinanceView
	ShowWeeklySummary() controller.FinanceView
}

// GetWeekHandler handles GET /v1/finance/week.
type GetWeekHandler struct {
	Finance weekLoader
}

// NewGetWeekHandler creates a new GetWeekHandler.
func NewGetWeekHandler(f weekLoader) *GetWeekHandler {
	return &GetWeekHandler{Finance: f}
}

func (h *GetWeekHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-finance-week",
		Method:      http.MethodGet,
		Path:        "/v1/finance/week",
		Summary:     "Get finance week",
		Description: "Loads the transactions and returns the weekly view, optionally moved to another week or narrowed to one day.",
		Tags:        []string{"Finance"},
	}, h.handle)
}

func (h *GetWeekHandler) handle(ctx context.Context, input *GetWeekInput) (*WeekOutput, error) {
	date, err := respond.ParseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	day, err := respond.ParseDate("day", input.Day)
	if err != nil {
		return nil, err
	}

	stopTimer := respond.Timer(ctx, "loadWeekMs")
	if date.IsZero() {
		_, err = h.Finance.Load(ctx)
	} else {
		_, err = h.Finance.SetDate(ctx, date)
	}
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}

	var view controller.FinanceView
	if day.IsZero() {
		view = h.Finance.ShowWeeklySummary()
	} else {
		view = h.Finance.ShowDay(day)
	}
	respond.AddData(ctx, "transactionCount", len(view.Transactions))
	return &WeekOutput{Body: toWeekView(view)}, nil
}

type weekStepper interface {
	NextWeek(ctx context.Context) (controller.FinanceView, error)
	PrevWeek(ctx context.Context) (controller.FinanceView, error)
}

// StepWeekInput is the Huma input for moving between weeks.
type StepWeekInput struct {
	Direction string `path:"direction" enum:"next,prev" doc:"next or prev"`
}

// StepWeekHandler handles POST /v1/finance/week/{direction}.
type StepWeekHandler struct {
	Finance weekStepper
}

// NewStepWeekHandler creates a new StepWeekHandler.
func NewStepWeekHandler(f weekStepper) *StepWeekHandler {
	return &StepWeekHandler{Finance: f}
}

func (h *StepWeekHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "step-finance-week",
		Method:      http.MethodPost,
		Path:        "/v1/finance/week/{direction}",
		Summary:     "Move to the next or previous week",
		Description: "Moves the reference date by seven days and reloads the transactions.",
		Tags:        []string{"Finance"},
	}, h.handle)
}

func (h *StepWeekHandler) handle(ctx context.Context, input *StepWeekInput) (*WeekOutput, error) {
	step := h.Finance.NextWeek
	if input.Direction == "prev" {
		step = h.Finance.PrevWeek
	}

	view, err := step(ctx)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &WeekOutput{Body: toWeekView(view)}, nil
}
