package actions

import (
	"context"

	"github.com/carson-networks/finance-client/internal/service"
)

// IAction is one mutation performed by an operator worker.
type IAction interface {
	Perform(ctx context.Context, svc *service.Service) error
	Name() string
}
