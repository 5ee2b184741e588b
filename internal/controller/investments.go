package controller

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-client/internal/aggregate"
	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

const (
	MessageInvestmentsLoadFailed  = "Failed to load investments."
	MessageInvestmentAdded        = "Investment successfully added!"
	MessageInvestmentAddFailed    = "Error adding investment."
	MessageInvestmentUpdated      = "Investment successfully updated!"
	MessageInvestmentUpdateFailed = "Error updating investment."
	MessageInvestmentDeleted      = "Investment successfully deleted!"
	MessageInvestmentDeleteFailed = "Error deleting investment."
)

type investmentSource interface {
	ListInvestments(ctx context.Context) ([]service.Investment, error)
}

type savingsGoalSource interface {
	ListSavingsGoals(ctx context.Context) ([]service.SavingsGoal, error)
}

type InvestmentRow struct {
	Investment  service.Investment
	Fluctuation string
}

// InvestmentForm is the editable investment. A non-empty ID updates it.
type InvestmentForm struct {
	ID           string
	Type         string
	Name         string
	Amount       decimal.Decimal
	Quantity     decimal.Decimal
	PurchaseDate time.Time
	Description  string
	Status       string
	Currency     string
}

func (f InvestmentForm) investment() service.Investment {
	return service.Investment{
		ID:           f.ID,
		Type:         f.Type,
		Name:         f.Name,
		Amount:       f.Amount,
		Quantity:     f.Quantity,
		PurchaseDate: f.PurchaseDate,
		Description:  f.Description,
		Status:       f.Status,
		Currency:     f.Currency,
	}
}

type InvestmentsView struct {
	State       State
	Investments []InvestmentRow
	Capital     aggregate.CapitalBreakdown
	Percentages aggregate.AllocationPercentages
	Allocation  aggregate.Allocation
	Form        InvestmentForm
	// MissingFields names the fields the last submission lacked.
	MissingFields map[string]bool
	Notification  *Notification
}

// Investments drives the investment page: the position list, the capital
// available for allocation and the allocation calculator.
type Investments struct {
	core

	investments  investmentSource
	transactions transactionSource
	goals        savingsGoalSource
	submitter    Submitter
	baseline     decimal.Decimal

	rows        []InvestmentRow
	capital     aggregate.CapitalBreakdown
	percentages aggregate.AllocationPercentages
	allocation  aggregate.Allocation
	form        InvestmentForm
	missing     map[string]bool
}

// NewInvestments creates a new Investments controller; baseline is the starting capital.
func NewInvestments(investments investmentSource, transactions transactionSource, goals savingsGoalSource,
	submitter Submitter, baseline decimal.Decimal, opts Options) *Investments {
	inv := &Investments{
		investments:  investments,
		transactions: transactions,
		goals:        goals,
		submitter:    submitter,
		baseline:     baseline,
	}
	inv.init("investments", opts)
	inv.capital = aggregate.CalculateAvailableCapital(baseline, nil, nil, inv.now())
	return inv
}

func (c *Investments) Load(ctx context.Context) (InvestmentsView, error) {
	c.mu.Lock()
	seq := c.beginLoadLocked()
	c.mu.Unlock()

	var (
		investments  []service.Investment
		transactions []service.Transaction
		goals        []service.SavingsGoal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		investments, err = c.investments.ListInvestments(gctx)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = c.transactions.ListTransactions(gctx)
		return err
	})
	g.Go(func() (err error) {
		goals, err = c.goals.ListSavingsGoals(gctx)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.seq.IsCurrent(seq) {
		return c.viewLocked(), nil
	}
	if err != nil {
		failure := c.loadFailedLocked(err, MessageInvestmentsLoadFailed)
		return c.viewLocked(), failure
	}

	c.rows = make([]InvestmentRow, 0, len(investments))
	for _, inv := range investments {
		c.rows = append(c.rows, InvestmentRow{Investment: inv, Fluctuation: aggregate.CalculateFluctuation(inv)})
	}
	c.capital = aggregate.CalculateAvailableCapital(c.baseline, transactions, goals, c.now())
	// Percentages survive a reload; the amounts follow the new capital.
	if allocation, err := aggregate.CalculateAllocations(c.percentages, c.capital.Available, c.allocation); err == nil {
		c.allocation = allocation
	}
	c.state = StateLoaded
	return c.viewLocked(), nil
}

// Allocate splits the available capital by pct. A rejected split leaves the
// previous percentages and allocation in place.
func (c *Investments) Allocate(pct aggregate.AllocationPercentages) (InvestmentsView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	allocation, err := aggregate.CalculateAllocations(pct, c.capital.Available, c.allocation)
	if err != nil {
		failure := c.rejectLocked(err)
		return c.viewLocked(), failure
	}
	c.percentages = pct
	c.allocation = allocation
	return c.viewLocked(), nil
}

func (c *Investments) Submit(ctx context.Context, form InvestmentForm) (InvestmentsView, error) {
	c.mu.Lock()
	c.form = form
	c.missing = nil
	if err := service.ValidateInvestment(form.investment()); err != nil {
		defer c.mu.Unlock()
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.missing = make(map[string]bool, len(vErr.Fields))
			for _, field := range vErr.Fields {
				c.missing[field] = true
			}
		}
		failure := c.rejectLocked(err)
		return c.viewLocked(), failure
	}
	c.mu.Unlock()

	success, fallback := MessageInvestmentAdded, MessageInvestmentAddFailed
	if form.ID != "" {
		success, fallback = MessageInvestmentUpdated, MessageInvestmentUpdateFailed
	}

	if err := c.submit(ctx, c.submitter, &actions.SaveInvestment{Investment: form.investment()}); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		failure := c.submitFailedLocked(err, fallback)
		return c.viewLocked(), failure
	}
	return c.afterMutation(ctx, success)
}

func (c *Investments) Delete(ctx context.Context, id string) (InvestmentsView, error) {
	if err := c.submit(ctx, c.submitter, &actions.DeleteInvestment{ID: id}); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		failure := c.submitFailedLocked(err, MessageInvestmentDeleteFailed)
		return c.viewLocked(), failure
	}
	return c.afterMutation(ctx, MessageInvestmentDeleted)
}

func (c *Investments) afterMutation(ctx context.Context, message string) (InvestmentsView, error) {
	c.mu.Lock()
	c.form = InvestmentForm{}
	c.mu.Unlock()

	if _, err := c.Load(ctx); err != nil {
		return c.View(), nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitSucceededLocked(message)
	return c.viewLocked(), nil
}

func (c *Investments) View() InvestmentsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Investments) viewLocked() InvestmentsView {
	rows := make([]InvestmentRow, len(c.rows))
	copy(rows, c.rows)
	return InvestmentsView{
		State:         c.state,
		Investments:   rows,
		Capital:       c.capital,
		Percentages:   c.percentages,
		Allocation:    c.allocation,
		Form:          c.form,
		MissingFields: maps.Clone(c.missing),
		Notification:  c.activeNotificationLocked(),
	}
}
