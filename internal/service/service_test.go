package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-client/internal/gateway"
)

// mockRequester is a testify mock of Requester.
type mockRequester struct {
	mock.Mock
}

func (m *mockRequester) Get(ctx context.Context, resource string, query url.Values, out interface{}) error {
	args := m.Called(ctx, resource, query, out)
	return args.Error(0)
}

func (m *mockRequester) Post(ctx context.Context, resource string, body, out interface{}) error {
	args := m.Called(ctx, resource, body, out)
	return args.Error(0)
}

func (m *mockRequester) Put(ctx context.Context, resource string, body, out interface{}) error {
	args := m.Called(ctx, resource, body, out)
	return args.Error(0)
}

func (m *mockRequester) Delete(ctx context.Context, resource string) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

// cookieRequester adds a fixed cookie set to mockRequester.
type cookieRequester struct {
	mockRequester
	cookies []*http.Cookie
}

func (c *cookieRequester) Cookies() []*http.Cookie {
	return c.cookies
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// respondWith decodes raw into the out argument the way the gateway would.
func respondWith(t *testing.T, raw string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		require.NoError(t, json.Unmarshal([]byte(raw), args.Get(3)))
	}
}

// payloadJSON renders a request body the way the gateway would send it.
func payloadJSON(t *testing.T, body interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func notFound(resource string) error {
	return &gateway.Error{Status: http.StatusNotFound, Message: "Resource not found at " + resource, Resource: resource}
}
