package controller

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

const (
	MessageDebtsLoadFailed    = "Failed to load debts"
	MessageDebtAdded          = "Debt added successfully!"
	MessageDebtAddFailed      = "Failed to add debt. Please try again."
	MessageDebtUpdated        = "Debt updated successfully!"
	MessageDebtUpdateFailed   = "Failed to update debt. Please try again."
	MessageDebtMarkedPaid     = "Debt marked as paid successfully!"
	MessageDebtMarkPaidFailed = "Failed to mark debt as paid"
	MessageDebtDeleted        = "Debt deleted successfully!"
	MessageDebtDeleteFailed   = "Failed to delete debt"
)

type debtSource interface {
	ListDebts(ctx context.Context) ([]service.Debt, error)
}

// DebtForm is the editable debt. A non-empty ID updates that debt.
type DebtForm struct {
	ID          string
	Creditor    string
	Description string
	Amount      decimal.Decimal
	Deadline    time.Time
}

type DebtsView struct {
	State        State
	Debts        []service.Debt
	Form         DebtForm
	Notification *Notification
}

type Debts struct {
	core

	source    debtSource
	submitter Submitter

	list []service.Debt
	form DebtForm
}

// NewDebts creates a new Debts controller.
func NewDebts(source debtSource, submitter Submitter, opts Options) *Debts {
	d := &Debts{source: source, submitter: submitter}
	d.init("debts", opts)
	return d
}

func (d *Debts) Load(ctx context.Context) (DebtsView, error) {
	d.mu.Lock()
	seq := d.beginLoadLocked()
	d.mu.Unlock()

	debts, err := d.source.ListDebts(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.seq.IsCurrent(seq) {
		return d.viewLocked(), nil
	}
	if err != nil {
		failure := d.loadFailedLocked(err, MessageDebtsLoadFailed)
		return d.viewLocked(), failure
	}

	d.list = debts
	d.state = StateLoaded
	return d.viewLocked(), nil
}

func (d *Debts) Edit(id string) (DebtsView, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := slices.IndexFunc(d.list, func(debt service.Debt) bool { return debt.ID == id })
	if i < 0 {
		return d.viewLocked(), false
	}
	debt := d.list[i]
	d.form = DebtForm{
		ID:          debt.ID,
		Creditor:    debt.Creditor,
		Description: debt.Description,
		Amount:      debt.Amount,
		Deadline:    debt.Deadline,
	}
	return d.viewLocked(), true
}

func (d *Debts) Reset() DebtsView {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = DebtForm{}
	return d.viewLocked()
}

// Submit creates the debt, or updates it when the form carries an ID.
func (d *Debts) Submit(ctx context.Context, form DebtForm) (DebtsView, error) {
	d.mu.Lock()
	d.form = form
	if err := validateDebtForm(form); err != nil {
		defer d.mu.Unlock()
		failure := d.rejectLocked(err)
		return d.viewLocked(), failure
	}
	d.mu.Unlock()

	action := &actions.SaveDebt{Debt: service.Debt{
		ID:          form.ID,
		Creditor:    form.Creditor,
		Description: form.Description,
		Amount:      form.Amount,
		Deadline:    form.Deadline,
	}}
	success, fallback := MessageDebtAdded, MessageDebtAddFailed
	if form.ID != "" {
		success, fallback = MessageDebtUpdated, MessageDebtUpdateFailed
	}

	if err := d.submit(ctx, d.submitter, action); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		failure := d.submitFailedLocked(err, fallback)
		return d.viewLocked(), failure
	}
	return d.afterMutation(ctx, success)
}

func (d *Debts) MarkAsPaid(ctx context.Context, id string) (DebtsView, error) {
	if err := d.submit(ctx, d.submitter, &actions.MarkDebtPaid{ID: id}); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		failure := d.submitFailedLocked(err, MessageDebtMarkPaidFailed)
		return d.viewLocked(), failure
	}
	return d.afterMutation(ctx, MessageDebtMarkedPaid)
}

func (d *Debts) Delete(ctx context.Context, id string) (DebtsView, error) {
	if err := d.submit(ctx, d.submitter, &actions.DeleteDebt{ID: id}); err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		failure := d.submitFailedLocked(err, MessageDebtDeleteFailed)
		return d.viewLocked(), failure
	}
	return d.afterMutation(ctx, MessageDebtDeleted)
}

func (d *Debts) afterMutation(ctx context.Context, message string) (DebtsView, error) {
	d.mu.Lock()
	d.form = DebtForm{}
	d.mu.Unlock()

	if _, err := d.Load(ctx); err != nil {
		return d.View(), nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitSucceededLocked(message)
	return d.viewLocked(), nil
}

func (d *Debts) View() DebtsView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

func (d *Debts) viewLocked() DebtsView {
	list := slices.Clone(d.list)
	if list == nil {
		list = []service.Debt{}
	}
	return DebtsView{
		State:        d.state,
		Debts:        list,
		Form:         d.form,
		Notification: d.activeNotificationLocked(),
	}
}

func validateDebtForm(form DebtForm) error {
	var missing []string
	if form.Creditor == "" {
		missing = append(missing, "creditor")
	}
	if form.Description == "" {
		missing = append(missing, "description")
	}
	if !form.Amount.IsPositive() {
		missing = append(missing, "amount")
	}
	if form.Deadline.IsZero() {
		missing = append(missing, "deadline")
	}
	if len(missing) > 0 {
		return service.NewValidationError(service.MessageRequiredFields, missing...)
	}
	return nil
}
