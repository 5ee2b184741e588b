package status

import (
	"errors"
	"net/http"

	"github.com/carson-networks/finance-client/internal/logging"
)

// worker is the part of the mutation queue the status check looks at.
type worker interface {
	Running() bool
}

type Handler struct {
	Operator worker
}

// NewHandler creates a new Handler reporting on the operator queue.
func NewHandler(op worker) Handler {
	return Handler{Operator: op}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.Operator != nil && !h.Operator.Running() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return errors.New("status: operator stopped")
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
