package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	service *service.Service
	queue   chan ActionItem
	logger  *logrus.Logger
}

// NewOperator creates a new Operator that takes its actions from queue.
func NewOperator(svc *service.Service, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		service: svc,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// The submitter already gave up; the backend call would be wasted.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err := item.action.Perform(item.ctx, o.service)
	if err != nil {
		o.logger.WithError(err).WithField("action", item.action.Name()).Debug("Operator.processItem.failed")
	}
	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
