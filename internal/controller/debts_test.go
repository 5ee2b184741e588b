package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

type debtsFunc func(ctx context.Context) ([]service.Debt, error)

func (f debtsFunc) ListDebts(ctx context.Context) ([]service.Debt, error) {
	return f(ctx)
}

var testDebt = service.Debt{
	ID:          "d1",
	Creditor:    "Bank",
	Description: "Car loan",
	Amount:      dec("1200"),
	Deadline:    date(2024, 6, 1),
}

func newTestDebts(submitter Submitter) *Debts {
	clock := &fakeClock{now: date(2024, 1, 3)}
	source := debtsFunc(func(ctx context.Context) ([]service.Debt, error) {
		return []service.Debt{testDebt}, nil
	})
	return NewDebts(source, submitter, testOptions(clock))
}

// -- Debts tests --

func TestDebts_LoadFailure(t *testing.T) {
	clock := &fakeClock{now: date(2024, 1, 3)}
	source := debtsFunc(func(ctx context.Context) ([]service.Debt, error) {
		return nil, errBackend
	})
	d := NewDebts(source, &mockSubmitter{}, testOptions(clock))

	view, err := d.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, view.Debts)
	assert.Equal(t, StateLoadFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageDebtsLoadFailed, view.Notification.Text)
}

func TestDebts_SubmitMissingCreditor(t *testing.T) {
	submitter := &mockSubmitter{}
	d := newTestDebts(submitter)

	view, err := d.Submit(context.Background(), DebtForm{Description: "Loan", Amount: dec("10"), Deadline: date(2024, 2, 1)})
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"creditor"}, vErr.Fields)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, service.MessageRequiredFields, view.Notification.Text)
	submitter.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestDebts_CreateAfterRejectedUpdateHasNoID(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.SaveDebt) bool {
		return a.Debt.ID == "" && a.Debt.Creditor == "Friend"
	})).Return(nil)
	d := newTestDebts(submitter)
	_, err := d.Load(context.Background())
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), DebtForm{ID: "d1", Creditor: "Bank"})
	require.ErrorIs(t, err, service.ErrValidation)

	view, err := d.Submit(context.Background(), DebtForm{
		Creditor:    "Friend",
		Description: "Dinner",
		Amount:      dec("30"),
		Deadline:    date(2024, 2, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, MessageDebtAdded, view.Notification.Text)
	submitter.AssertExpectations(t)
	submitter.AssertNumberOfCalls(t, "Process", 1)
}

func TestDebts_SubmitUpdateFailure(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, mock.Anything).Return(errBackend)
	d := newTestDebts(submitter)

	form := DebtForm{ID: "d1", Creditor: "Bank", Description: "Car loan", Amount: dec("900"), Deadline: date(2024, 6, 1)}
	view, err := d.Submit(context.Background(), form)
	require.Error(t, err)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageDebtUpdateFailed, view.Notification.Text)
	assert.Equal(t, form, view.Form)
}

func TestDebts_EditSubmitsUpdate(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.SaveDebt) bool {
		return a.Debt.ID == "d1" && a.Debt.Amount.Equal(dec("1000"))
	})).Return(nil)
	d := newTestDebts(submitter)
	_, err := d.Load(context.Background())
	require.NoError(t, err)

	view, ok := d.Edit("d1")
	require.True(t, ok)
	form := view.Form
	form.Amount = dec("1000")

	view, err = d.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, MessageDebtUpdated, view.Notification.Text)
	assert.Equal(t, DebtForm{}, view.Form)
	submitter.AssertExpectations(t)
}

func TestDebts_MarkAsPaidAndDeleteMessages(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, &actions.MarkDebtPaid{ID: "d1"}).Return(nil)
	submitter.On("Process", mock.Anything, &actions.DeleteDebt{ID: "d1"}).Return(nil)
	d := newTestDebts(submitter)

	view, err := d.MarkAsPaid(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, MessageDebtMarkedPaid, view.Notification.Text)

	view, err = d.Delete(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, MessageDebtDeleted, view.Notification.Text)
	submitter.AssertExpectations(t)
}

func TestDebts_MarkAsPaidFailure(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Process", mock.Anything, &actions.MarkDebtPaid{ID: "d1"}).Return(errBackend)
	d := newTestDebts(submitter)

	view, err := d.MarkAsPaid(context.Background(), "d1")
	require.Error(t, err)
	assert.Equal(t, StateSubmitFailed, view.State)
	require.NotNil(t, view.Notification)
	assert.Equal(t, MessageDebtMarkPaidFailed, view.Notification.Text)
}
