// Package respond holds what every v1 handler shares: the notification
// model, error mapping and request value parsing.
package respond

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-client/internal/controller"
	"github.com/carson-networks/finance-client/internal/gateway"
	"github.com/carson-networks/finance-client/internal/logging"
	"github.com/carson-networks/finance-client/internal/service"
)

// Notification is the API model of a controller's message slot.
type Notification struct {
	Kind      string `json:"kind" enum:"success,error" doc:"Notification kind"`
	Text      string `json:"text" doc:"Message shown to the user"`
	ExpiresAt string `json:"expiresAt" format:"date-time" doc:"RFC3339 time the message stops being shown"`
}

func FromNotification(n *controller.Notification) *Notification {
	if n == nil {
		return nil
	}
	return &Notification{
		Kind:      string(n.Kind),
		Text:      n.Text,
		ExpiresAt: n.ExpiresAt.Format(time.RFC3339),
	}
}

// Error maps a controller or service error onto an HTTP error. Validation
// failures are the caller's fault; gateway failures are reported as a bad
// upstream unless the backend said the resource does not exist or the
// session is no longer valid.
func Error(err error) error {
	message := messageOf(err)

	switch status := gateway.StatusOf(err); {
	case errors.Is(err, service.ErrValidation):
		return huma.NewError(http.StatusBadRequest, message, err)
	case status == http.StatusNotFound:
		return huma.NewError(http.StatusNotFound, message, err)
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return huma.NewError(http.StatusUnauthorized, message, err)
	case status >= 0:
		return huma.NewError(http.StatusBadGateway, message, err)
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}

func messageOf(err error) string {
	var failure *controller.Failure
	if errors.As(err, &failure) {
		return failure.Message
	}
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return "An unexpected error occurred"
}

// Timer starts a timing on the request's LogData. The returned func is safe
// to call when the request carries none.
func Timer(ctx context.Context, name string) func() {
	logData := logging.GetLogData(ctx)
	if logData == nil {
		return func() {}
	}
	return logData.AddTiming(name)
}

// AddData records a field on the request's LogData when there is one.
func AddData(ctx context.Context, key string, value interface{}) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData(key, value)
	}
}

// ParseDate reads a calendar date or RFC3339 timestamp. Empty input yields
// the zero time so required-field checks stay with the controllers.
func ParseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, ok := service.ParseDate(raw)
	if !ok {
		return time.Time{}, huma.NewError(http.StatusBadRequest, "invalid "+field)
	}
	return t, nil
}

// ParseAmount reads a decimal amount. Empty input yields zero.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return d, nil
}

// FormatDate renders a date for responses, empty for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
