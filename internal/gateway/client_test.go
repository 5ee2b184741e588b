package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-client/internal/logging"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, NewHTTPClient(5*time.Second), quietLogger())
	require.NoError(t, err)
	return client, server
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// -- request shape tests --

func TestClient_Get_DecodesAndSendsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/transactions/search", r.URL.Path)
		assert.Equal(t, "groceries", r.URL.Query().Get("category"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, []map[string]string{{"id": "t1"}})
	})

	var out []map[string]string
	err := client.Get(context.Background(), "transactions/search", url.Values{"category": {"groceries"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t1", out[0]["id"])
}

func TestClient_Post_EncodesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Bank", body["creditor"])
		writeJSON(w, http.StatusCreated, map[string]string{"id": "d1"})
	})

	var out map[string]string
	err := client.Post(context.Background(), "debts", map[string]string{"creditor": "Bank"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "d1", out["id"])
}

func TestClient_Delete_EmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/debts/d1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.Delete(context.Background(), "debts/d1"))
}

func TestClient_DecodeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	var out []string
	err := client.Get(context.Background(), "budget", nil, &out)
	assert.ErrorContains(t, err, "decode budget response")
	assert.Equal(t, -1, StatusOf(err))
}

func TestClient_RecordsGatewayTiming(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []string{})
	})

	logData := logging.NewLogData(quietLogger())
	ctx := logging.WithLogData(context.Background(), logData)
	require.NoError(t, client.Get(ctx, "budget", nil, nil))
	require.NoError(t, client.Get(ctx, "debts", nil, nil))

	assert.Contains(t, logData.Log().Data, "gatewayMs")
}

func TestClient_GatewayTimingExcludesRefresher(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token required"})
			return
		}
		writeJSON(w, http.StatusOK, []string{})
	})
	client.SetRefresher(func(ctx context.Context) error {
		time.Sleep(300 * time.Millisecond)
		return nil
	})

	logData := logging.NewLogData(quietLogger())
	ctx := logging.WithLogData(context.Background(), logData)
	require.NoError(t, client.Get(ctx, "debts", nil, nil))

	elapsed, ok := logData.Log().Data["gatewayMs"].(int64)
	require.True(t, ok)
	assert.Less(t, elapsed, int64(300))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// -- error normalization tests --

func TestClient_NotFound(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Get(context.Background(), "savings-goals", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "Resource not found at "+server.URL+"/savings-goals", gwErr.Message)
}

func TestClient_BackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "amount must be positive"})
	})

	err := client.Post(context.Background(), "transactions", map[string]int{"amount": -1}, nil)
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusBadRequest, gwErr.Status)
	assert.Equal(t, "amount must be positive", gwErr.Message)
}

func TestClient_StatusTextWhenNoMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.Get(context.Background(), "budget", nil, nil)
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), gwErr.Message)
}

func TestClient_NoConnection(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := NewClient(server.URL, NewHTTPClient(time.Second), quietLogger())
	require.NoError(t, err)

	err = client.Get(context.Background(), "budget", nil, nil)
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, StatusNoConnection, gwErr.Status)
	assert.Equal(t, "No connection", gwErr.Message)
}

// -- credential refresh tests --

func TestClient_RefreshesOnceThenRetries(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token required"})
			return
		}
		writeJSON(w, http.StatusOK, []string{"ok"})
	})

	var refreshes int32
	client.SetRefresher(func(ctx context.Context) error {
		atomic.AddInt32(&refreshes, 1)
		return nil
	})

	var out []string
	require.NoError(t, client.Get(context.Background(), "debts", nil, &out))
	assert.Equal(t, []string{"ok"}, out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshes))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_SecondRejectionSurfaces(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "Invalid or expired token"})
	})

	var refreshes int32
	client.SetRefresher(func(ctx context.Context) error {
		atomic.AddInt32(&refreshes, 1)
		return nil
	})

	err := client.Get(context.Background(), "debts", nil, nil)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshes))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_UnrecognizedRejectionNotRefreshed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
	})

	client.SetRefresher(func(ctx context.Context) error {
		t.Fatal("refresher must not run")
		return nil
	})

	err := client.Get(context.Background(), "debts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestClient_FailedRefreshReturnsOriginalError(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token required"})
	})

	client.SetRefresher(func(ctx context.Context) error {
		return errors.New("refresh token expired")
	})

	err := client.Get(context.Background(), "debts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_WithoutRefreshSkipsRefresher(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token required"})
	})

	client.SetRefresher(func(ctx context.Context) error {
		t.Fatal("refresher must not run")
		return nil
	})

	err := client.Get(WithoutRefresh(context.Background()), "auth/refresh", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
}

func TestClient_SharesCookieJar(t *testing.T) {
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusOK)
	}))
	defer users.Close()

	httpClient := NewHTTPClient(time.Second)
	userClient, err := NewClient(users.URL, httpClient, quietLogger())
	require.NoError(t, err)

	require.NoError(t, userClient.Post(context.Background(), "auth/login", map[string]string{}, nil))

	cookies := userClient.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
}
