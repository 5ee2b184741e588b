package debt

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/gateway"
	"github.com/carson-networks/finance-client/internal/service"
)

type mockDebts struct {
	mock.Mock
}

func (m *mockDebts) Load(ctx context.Context) (controller.DebtsView, error) {
	args := m.Called(ctx)
	return args.Get(0).(controller.DebtsView), args.Error(1)
}

func (m *mockDebts) Submit(ctx context.Context, form controller.DebtForm) (controller.DebtsView, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(controller.DebtsView), args.Error(1)
}

func (m *mockDebts) MarkAsPaid(ctx context.Context, id string) (controller.DebtsView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(controller.DebtsView), args.Error(1)
}

func (m *mockDebts) Delete(ctx context.Context, id string) (controller.DebtsView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(controller.DebtsView), args.Error(1)
}

func newTestAPI(t *testing.T, d debtsController) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(d).Register(api)
	return api
}

func debtsView() controller.DebtsView {
	return controller.DebtsView{
		State: controller.StateLoaded,
		Debts: []service.Debt{{
			ID:          "d1",
			Creditor:    "Bank",
			Description: "Car loan",
			Amount:      decimal.NewFromInt(1200),
			Deadline:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			IsPaid:      true,
		}},
	}
}

// -- Debts HTTP tests --

func TestHTTP_ListDebts(t *testing.T) {
	d := new(mockDebts)
	d.On("Load", mock.Anything).Return(debtsView(), nil)

	resp := newTestAPI(t, d).Get("/v1/debts")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body DebtsView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Debts, 1)
	assert.Equal(t, Debt{
		ID: "d1", Creditor: "Bank", Description: "Car loan", Amount: "1200", Deadline: "2024-06-01T00:00:00Z", IsPaid: true,
	}, body.Debts[0])
}

func TestHTTP_ListDebts_Failure(t *testing.T) {
	d := new(mockDebts)
	d.On("Load", mock.Anything).Return(controller.DebtsView{}, &controller.Failure{
		Message: controller.MessageDebtsLoadFailed,
		Err:     &gateway.Error{Status: http.StatusInternalServerError},
	})

	resp := newTestAPI(t, d).Get("/v1/debts")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), controller.MessageDebtsLoadFailed)
}

func TestHTTP_SaveDebt(t *testing.T) {
	d := new(mockDebts)
	d.On("Submit", mock.Anything, mock.MatchedBy(func(form controller.DebtForm) bool {
		return form.ID == "" && form.Creditor == "Bank" && form.Deadline.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(debtsView(), nil)

	resp := newTestAPI(t, d).Post("/v1/debts", map[string]string{
		"creditor": "Bank", "description": "Car loan", "amount": "1200", "deadline": "2024-06-01",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	d.AssertExpectations(t)
}

func TestHTTP_MarkDebtPaid(t *testing.T) {
	d := new(mockDebts)
	d.On("MarkAsPaid", mock.Anything, "d1").Return(debtsView(), nil)

	resp := newTestAPI(t, d).Put("/v1/debts/d1/paid")

	assert.Equal(t, http.StatusOK, resp.Code)
	d.AssertExpectations(t)
}

func TestHTTP_DeleteDebt_NotFound(t *testing.T) {
	d := new(mockDebts)
	d.On("Delete", mock.Anything, "missing").Return(controller.DebtsView{}, &controller.Failure{
		Message: controller.MessageDebtDeleteFailed,
		Err:     &gateway.Error{Status: http.StatusNotFound, Message: "Resource not found at x"},
	})

	resp := newTestAPI(t, d).Delete("/v1/debts/missing")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
