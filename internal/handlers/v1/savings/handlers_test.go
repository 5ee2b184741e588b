package savings

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

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/service"
)

type mockSavings struct {
	mock.Mock
}

func (m *mockSavings) Load(ctx context.Context) (controller.SavingsView, error) {
	args := m.Called(ctx)
	return args.Get(0).(controller.SavingsView), args.Error(1)
}

func (m *mockSavings) Submit(ctx context.Context, form controller.SavingsGoalForm) (controller.SavingsView, error) {
	args := m.Called(ctx, form)
	return args.Get(0).(controller.SavingsView), args.Error(1)
}

func (m *mockSavings) Delete(ctx context.Context, id string) (controller.SavingsView, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(controller.SavingsView), args.Error(1)
}

func newTestAPI(t *testing.T, c savingsController) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(c).Register(api)
	return api
}

// -- Savings HTTP tests --

func TestHTTP_ListSavings(t *testing.T) {
	c := new(mockSavings)
	c.On("Load", mock.Anything).Return(controller.SavingsView{
		State: controller.StateLoaded,
		Goals: []service.SavingsGoal{{
			ID:            "g1",
			GoalName:      "Car",
			TargetAmount:  decimal.NewFromInt(5000),
			CurrentAmount: decimal.NewFromInt(1000),
			StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Deadline:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Capital: aggregate.CapitalBreakdown{Available: decimal.NewFromInt(9000)},
	}, nil)

	resp := newTestAPI(t, c).Get("/v1/savings")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SavingsView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Goals, 1)
	assert.Equal(t, "Car", body.Goals[0].GoalName)
	assert.Equal(t, "2024-01-01T00:00:00Z", body.Goals[0].StartDate)
	assert.Equal(t, "9000", body.AvailableCapital)
}

func TestHTTP_SaveGoal_ParsesForm(t *testing.T) {
	c := new(mockSavings)
	c.On("Submit", mock.Anything, mock.MatchedBy(func(f controller.SavingsGoalForm) bool {
		return f.GoalName == "Car" &&
			f.CurrentAmount.Equal(decimal.NewFromInt(500)) &&
			f.Deadline.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(controller.SavingsView{State: controller.StateSubmitSucceeded}, nil)

	resp := newTestAPI(t, c).Post("/v1/savings", map[string]string{
		"goalName":      "Car",
		"targetAmount":  "5000",
		"currentAmount": "500",
		"startDate":     "2025-01-01",
		"deadline":      "2025-06-01",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	c.AssertExpectations(t)
}

func TestHTTP_SaveGoal_InvalidDate(t *testing.T) {
	c := new(mockSavings)

	resp := newTestAPI(t, c).Post("/v1/savings", map[string]string{"goalName": "Car", "deadline": "soon"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	c.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestHTTP_SaveGoal_ExceedsCapital(t *testing.T) {
	vErr := service.NewValidationError(controller.MessageGoalExceedsAvailable, "currentAmount")
	c := new(mockSavings)
	c.On("Submit", mock.Anything, mock.Anything).Return(controller.SavingsView{}, &controller.Failure{Message: vErr.Message, Err: vErr})

	resp := newTestAPI(t, c).Post("/v1/savings", map[string]string{"goalName": "Car", "currentAmount": "999999"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), controller.MessageGoalExceedsAvailable)
}

func TestHTTP_DeleteGoal(t *testing.T) {
	c := new(mockSavings)
	c.On("Delete", mock.Anything, "g1").Return(controller.SavingsView{State: controller.StateSubmitSucceeded}, nil)

	resp := newTestAPI(t, c).Delete("/v1/savings/g1")

	assert.Equal(t, http.StatusOK, resp.Code)
	c.AssertExpectations(t)
}
