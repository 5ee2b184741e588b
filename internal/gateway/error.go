package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// StatusNoConnection is reported when the backend could not be reached at all.
	StatusNoConnection = 0

	messageNoConnection = "No connection"
	messageUnexpected   = "An unexpected error occurred"
)

// Error is the normalized failure every gateway call surfaces.
type Error struct {
	Status   int    `json:"status"`
	Message  string `json:"message"`
	Resource string `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s: %s (status %d)", e.Resource, e.Message, e.Status)
}

// IsNotFound reports whether err is a gateway 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by a gateway error, or -1 when err
// did not come from the gateway.
func StatusOf(err error) int {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Status
	}
	return -1
}

// normalize turns a failed response into an Error. message is whatever the
// backend put in its JSON body, possibly empty.
func normalize(status int, target, resource, message string) *Error {
	switch {
	case status == StatusNoConnection:
		message = messageNoConnection
	case status == http.StatusNotFound:
		message = fmt.Sprintf("Resource not found at %s", target)
	case message == "":
		message = http.StatusText(status)
		if message == "" {
			message = messageUnexpected
		}
	}
	return &Error{Status: status, Message: message, Resource: resource}
}
