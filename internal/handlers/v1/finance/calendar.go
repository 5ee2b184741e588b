package finance

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/aggregate"
)

type CalendarEvent struct {
	Date   string `json:"date" doc:"YYYY-MM-DD"`
	Type   string `json:"type" doc:"Income or Expense"`
	Amount string `json:"amount" doc:"Sum of the day's transactions of this type"`
}

type CalendarOutput struct {
	Body struct {
		Events []CalendarEvent `json:"events"`
	}
}

type calendarSource interface {
	Calendar() []aggregate.CalendarEvent
}

// CalendarHandler handles GET /v1/finance/calendar. It reads what the last
// load fetched and does not reload.
type CalendarHandler struct {
	Finance calendarSource
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(f calendarSource) *CalendarHandler {
	return &CalendarHandler{Finance: f}
}

func (h *CalendarHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-finance-calendar",
		Method:      http.MethodGet,
		Path:        "/v1/finance/calendar",
		Summary:     "Get calendar events",
		Description: "Returns one event per day and transaction type with the summed amount.",
		Tags:        []string{"Finance"},
	}, h.handle)
}

func (h *CalendarHandler) handle(ctx context.Context, _ *struct{}) (*CalendarOutput, error) {
	events := h.Finance.Calendar()

	out := &CalendarOutput{}
	out.Body.Events = make([]CalendarEvent, len(events))
	for i, e := range events {
		out.Body.Events[i] = CalendarEvent{Date: e.Date, Type: string(e.Type), Amount: e.Amount.String()}
	}
	return out, nil
}
