package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-client/internal/logging"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 8 << 20

	messageTokenRequired = "Token required"
	messageTokenInvalid  = "Invalid or expired token"
)

// Refresher renews the session credentials after the backend rejected them.
type Refresher func(ctx context.Context) error

// Client performs JSON calls against one backend service. Clients built from
// the same http.Client share its cookie jar, so credentials set by the user
// service travel with calls to every other service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	logger    *logrus.Logger
	refresher Refresher
}

// NewHTTPClient returns an http.Client with a cookie jar for session credentials.
func NewHTTPClient(timeout time.Duration) *http.Client {
	// cookiejar.New only fails for a broken public suffix list, and nil has none.
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
	}
}

// NewClient creates a new Client for the backend at baseURL.
func NewClient(baseURL string, httpClient *http.Client, logger *logrus.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	return &Client{
		baseURL: u,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// SetRefresher installs the hook used to renew credentials on a recognized
// token rejection. Without one, rejections surface as ordinary errors.
func (c *Client) SetRefresher(r Refresher) {
	c.refresher = r
}

// Cookies returns the credential cookies the jar holds for this service.
func (c *Client) Cookies() []*http.Cookie {
	if c.http.Jar == nil {
		return nil
	}
	return c.http.Jar.Cookies(c.baseURL)
}

// Get fetches resource and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, resource string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, resource, query, nil, out)
}

func (c *Client) Post(ctx context.Context, resource string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, resource, nil, body, out)
}

func (c *Client) Put(ctx context.Context, resource string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, resource, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, resource string) error {
	return c.do(ctx, http.MethodDelete, resource, nil, nil, nil)
}

type noRefreshKey struct{}

// WithoutRefresh marks ctx so a token rejection is returned as is instead
// of triggering a refresh. The refresh call itself runs under it.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRefreshKey{}, true)
}

func (c *Client) do(ctx context.Context, method, resource string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s body: %w", resource, err)
		}
	}

	err := c.attempt(ctx, method, resource, query, payload, out)
	if !c.shouldRefresh(ctx, err) {
		return err
	}

	c.logger.WithField("resource", resource).Info("Gateway.refreshingCredentials")
	if refreshErr := c.refresher(WithoutRefresh(ctx)); refreshErr != nil {
		c.logger.WithError(refreshErr).WithField("resource", resource).Warn("Gateway.refreshFailed")
		return err
	}

	return c.attempt(ctx, method, resource, query, payload, out)
}

func (c *Client) shouldRefresh(ctx context.Context, err error) bool {
	if err == nil || c.refresher == nil {
		return false
	}
	if skip, _ := ctx.Value(noRefreshKey{}).(bool); skip {
		return false
	}
	var gwErr *Error
	if !errors.As(err, &gwErr) {
		return false
	}
	switch gwErr.Status {
	case http.StatusUnauthorized:
		return gwErr.Message == messageTokenRequired
	case http.StatusForbidden:
		return gwErr.Message == messageTokenInvalid
	}
	return false
}

func (c *Client) attempt(ctx context.Context, method, resource string, query url.Values, payload []byte, out interface{}) error {
	// Backend time adds up across every round trip a request makes.
	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddToExistingTiming("gatewayMs")()
	}

	target := c.baseURL.JoinPath(resource)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return fmt.Errorf("gateway: build %s request: %w", resource, err)
	}
	requestID := uuid.Must(uuid.NewV4()).String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.WithFields(logrus.Fields{
		"method":    method,
		"resource":  resource,
		"requestID": requestID,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.WithError(err).Debug("Gateway.noConnection")
		return normalize(StatusNoConnection, target.String(), resource, "")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("gateway: read %s response: %w", resource, err)
	}

	log.WithFields(logrus.Fields{
		"status":     resp.StatusCode,
		"durationMs": time.Since(start).Milliseconds(),
	}).Debug("Gateway.call")

	if resp.StatusCode >= http.StatusBadRequest {
		return normalize(resp.StatusCode, target.String(), resource, backendMessage(data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.WithError(err).Debugf("Gateway.decodeFailed payload=%s", spew.Sdump(string(data)))
		return fmt.Errorf("gateway: decode %s response: %w", resource, err)
	}

	return nil
}

// backendMessage pulls the human readable message out of an error body.
func backendMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
