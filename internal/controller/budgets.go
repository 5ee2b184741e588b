package controller

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

const (
	MessageBudgetsLoaded        = "Budgets loaded successfully!"
	MessageBudgetsLoadFailed    = "Failed to load budgets."
	MessageBudgetAdded          = "Budget added successfully!"
	MessageBudgetAddFailed      = "Failed to add budget. Please try again."
	MessageBudgetUpdated        = "Budget updated successfully!"
	MessageBudgetUpdateFailed   = "Error updating budget. Please try again."
	MessageBudgetDeleted        = "Budget deleted successfully!"
	MessageBudgetDeleteFailed   = "Failed to delete budget. Please try again."
	MessageBudgetSelectRequired = "Please select a budget and fill in all fields."
	MessageBudgetExists         = "A budget for this category already exists."
)

type budgetSource interface {
	ListBudgets(ctx context.Context) ([]service.Budget, error)
}

// BudgetForm is the editable budget. A non-empty Selected switches the
// submission to an update of that category.
type BudgetForm struct {
	Selected     string
	Category     string
	MonthlyLimit decimal.Decimal
}

type BudgetsView struct {
	State        State
	Budgets      []service.Budget
	Groups       []aggregate.BudgetGroup
	Form         BudgetForm
	Notification *Notification
}

type Budgets struct {
	core

	budgets      budgetSource
	transactions transactionSource
	submitter    Submitter

	list []service.Budget
	form BudgetForm
}

// NewBudgets creates a new Budgets controller.
func NewBudgets(budgets budgetSource, transactions transactionSource, submitter Submitter, opts Options) *Budgets {
	b := &Budgets{budgets: budgets, transactions: transactions, submitter: submitter}
	b.init("budgets", opts)
	return b
}

// Load fetches budgets and transactions together and attaches the remaining
// amount of every budget.
func (b *Budgets) Load(ctx context.Context) (BudgetsView, error) {
	b.mu.Lock()
	seq := b.beginLoadLocked()
	b.mu.Unlock()

	var (
		budgets      []service.Budget
		transactions []service.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		budgets, err = b.budgets.ListBudgets(gctx)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = b.transactions.ListTransactions(gctx)
		return err
	})
	err := g.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.seq.IsCurrent(seq) {
		return b.viewLocked(), nil
	}
	if err != nil {
		failure := b.loadFailedLocked(err, MessageBudgetsLoadFailed)
		return b.viewLocked(), failure
	}

	b.list = aggregate.CalculateRemaining(budgets, transactions)
	b.state = StateLoaded
	b.notifyLocked(NotificationSuccess, MessageBudgetsLoaded)
	return b.viewLocked(), nil
}

// Edit copies the budget of category into the form and selects it.
func (b *Budgets) Edit(category string) (BudgetsView, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.list, func(bg service.Budget) bool { return bg.Category == category })
	if i < 0 {
		return b.viewLocked(), false
	}
	b.form = BudgetForm{
		Selected:     category,
		Category:     b.list[i].Category,
		MonthlyLimit: b.list[i].MonthlyLimit,
	}
	return b.viewLocked(), true
}

func (b *Budgets) Reset() BudgetsView {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = BudgetForm{}
	return b.viewLocked()
}

// Submit creates a budget, or updates the category named by form.Selected.
func (b *Budgets) Submit(ctx context.Context, form BudgetForm) (BudgetsView, error) {
	b.mu.Lock()
	b.form = form
	update := form.Selected != ""
	err := validateBudgetForm(form, update)
	if err == nil && !update && b.hasCategoryLocked(form.Category) {
		err = service.NewValidationError(MessageBudgetExists, "category")
	}
	if err != nil {
		defer b.mu.Unlock()
		failure := b.rejectLocked(err)
		return b.viewLocked(), failure
	}
	b.mu.Unlock()

	action := &actions.SaveBudget{Category: form.Category, MonthlyLimit: form.MonthlyLimit, Update: update}
	success, fallback := MessageBudgetAdded, MessageBudgetAddFailed
	if update {
		action.Category = form.Selected
		success, fallback = MessageBudgetUpdated, MessageBudgetUpdateFailed
	}

	if err := b.submit(ctx, b.submitter, action); err != nil {
		b.mu.Lock()
		defer b.mu.Unlock()
		failure := b.submitFailedLocked(err, fallback)
		return b.viewLocked(), failure
	}
	return b.afterMutation(ctx, success)
}

func (b *Budgets) Delete(ctx context.Context, category string) (BudgetsView, error) {
	if err := b.submit(ctx, b.submitter, &actions.DeleteBudget{Category: category}); err != nil {
		b.mu.Lock()
		defer b.mu.Unlock()
		failure := b.submitFailedLocked(err, MessageBudgetDeleteFailed)
		return b.viewLocked(), failure
	}
	return b.afterMutation(ctx, MessageBudgetDeleted)
}

func (b *Budgets) afterMutation(ctx context.Context, message string) (BudgetsView, error) {
	b.mu.Lock()
	b.form = BudgetForm{}
	b.mu.Unlock()

	if _, err := b.Load(ctx); err != nil {
		return b.View(), nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitSucceededLocked(message)
	return b.viewLocked(), nil
}

func (b *Budgets) View() BudgetsView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewLocked()
}

func (b *Budgets) viewLocked() BudgetsView {
	list := slices.Clone(b.list)
	if list == nil {
		list = []service.Budget{}
	}
	return BudgetsView{
		State:        b.state,
		Budgets:      list,
		Groups:       aggregate.GroupBudgetsByCategory(list),
		Form:         b.form,
		Notification: b.activeNotificationLocked(),
	}
}

func (b *Budgets) hasCategoryLocked(category string) bool {
	return slices.ContainsFunc(b.list, func(bg service.Budget) bool {
		return strings.EqualFold(bg.Category, category)
	})
}

func validateBudgetForm(form BudgetForm, update bool) error {
	if update {
		if !form.MonthlyLimit.IsPositive() {
			return service.NewValidationError(MessageBudgetSelectRequired, "monthlyLimit")
		}
		return nil
	}

	var missing []string
	if form.Category == "" {
		missing = append(missing, "category")
	}
	if !form.MonthlyLimit.IsPositive() {
		missing = append(missing, "monthlyLimit")
	}
	if len(missing) > 0 {
		return service.NewValidationError(service.MessageRequiredFields, missing...)
	}
	return nil
}
