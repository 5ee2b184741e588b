package investment

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/handlers/v1/respond"
)

type investmentsController interface {
	Load(ctx context.Context) (controller.InvestmentsView, error)
	Allocate(pct aggregate.AllocationPercentages) (controller.InvestmentsView, error)
	Submit(ctx context.Context, form controller.InvestmentForm) (controller.InvestmentsView, error)
	Delete(ctx context.Context, id string) (controller.InvestmentsView, error)
}

// Handler serves the investments page.
type Handler struct {
	Investments investmentsController
}

// NewHandler creates a new Handler for the investment endpoints.
func NewHandler(c investmentsController) *Handler {
	return &Handler{Investments: c}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-investments",
		Method:      http.MethodGet,
		Path:        "/v1/investments",
		Summary:     "List investments",
		Description: "Loads the investments with their fluctuation and the capital available for allocation.",
		Tags:        []string{"Investments"},
	}, h.list)

	huma.Register(api, huma.Operation{
		OperationID: "save-investment",
		Method:      http.MethodPost,
		Path:        "/v1/investments",
		Summary:     "Create or update an investment",
		Tags:        []string{"Investments"},
	}, h.save)

	huma.Register(api, huma.Operation{
		OperationID: "allocate-capital",
		Method:      http.MethodPost,
		Path:        "/v1/investments/allocation",
		Summary:     "Split the available capital",
		Description: "Converts allocation percentages into amounts. A split over 100% is rejected and the previous allocation kept.",
		Tags:        []string{"Investments"},
	}, h.allocate)

	huma.Register(api, huma.Operation{
		OperationID: "delete-investment",
		Method:      http.MethodDelete,
		Path:        "/v1/investments/{id}",
		Summary:     "Delete an investment",
		Tags:        []string{"Investments"},
	}, h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*InvestmentsOutput, error) {
	stopTimer := respond.Timer(ctx, "loadInvestmentsMs")
	view, err := h.Investments.Load(ctx)
	stopTimer()
	if err != nil {
		return nil, respond.Error(err)
	}
	return &InvestmentsOutput{Body: toInvestmentsView(view)}, nil
}

type SaveInvestmentInput struct {
	Body struct {
		ID           string `json:"id,omitempty" doc:"Investment to update; empty creates one"`
		Type         string `json:"type,omitempty"`
		Name         string `json:"name,omitempty"`
		Amount       string `json:"amount,omitempty"`
		Quantity     string `json:"quantity,omitempty"`
		PurchaseDate string `json:"purchaseDate,omitempty" doc:"YYYY-MM-DD"`
		Description  string `json:"description,omitempty"`
		Status       string `json:"status,omitempty"`
		Currency     string `json:"currency,omitempty"`
	}
}

func (h *Handler) save(ctx context.Context, input *SaveInvestmentInput) (*InvestmentsOutput, error) {
	amount, err := respond.ParseAmount("amount", input.Body.Amount)
	if err != nil {
		return nil, err
	}
	quantity, err := respond.ParseAmount("quantity", input.Body.Quantity)
	if err != nil {
		return nil, err
	}
	purchased, err := respond.ParseDate("purchaseDate", input.Body.PurchaseDate)
	if err != nil {
		return nil, err
	}

	view, err := h.Investments.Submit(ctx, controller.InvestmentForm{
		ID:           input.Body.ID,
		Type:         input.Body.Type,
		Name:         input.Body.Name,
		Amount:       amount,
		Quantity:     quantity,
		PurchaseDate: purchased,
		Description:  input.Body.Description,
		Status:       input.Body.Status,
		Currency:     input.Body.Currency,
	})
	if err != nil {
		return nil, respond.Error(err)
	}
	return &InvestmentsOutput{Body: toInvestmentsView(view)}, nil
}

type AllocateInput struct {
	Body struct {
		Stocks  string `json:"stocks" required:"true" doc:"Percent of capital for stocks"`
		Crypto  string `json:"crypto" required:"true" doc:"Percent of capital for crypto"`
		Savings string `json:"savings" required:"true" doc:"Percent of capital for savings"`
	}
}

func (h *Handler) allocate(ctx context.Context, input *AllocateInput) (*InvestmentsOutput, error) {
	var pct aggregate.AllocationPercentages
	var err error
	if pct.Stocks, err = respond.ParseAmount("stocks", input.Body.Stocks); err != nil {
		return nil, err
	}
	if pct.Crypto, err = respond.ParseAmount("crypto", input.Body.Crypto); err != nil {
		return nil, err
	}
	if pct.Savings, err = respond.ParseAmount("savings", input.Body.Savings); err != nil {
		return nil, err
	}

	view, err := h.Investments.Allocate(pct)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &InvestmentsOutput{Body: toInvestmentsView(view)}, nil
}

type DeleteInvestmentInput struct {
	ID string `path:"id"`
}

func (h *Handler) delete(ctx context.Context, input *DeleteInvestmentInput) (*InvestmentsOutput, error) {
	view, err := h.Investments.Delete(ctx, input.ID)
	if err != nil {
		return nil, respond.Error(err)
	}
	return &InvestmentsOutput{Body: toInvestmentsView(view)}, nil
}
