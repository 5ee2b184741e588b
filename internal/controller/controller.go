// Package controller keeps the per-page view state of the client: what was
// loaded, what is selected for editing, and the one notification shown to
// the user. Reads go straight to the resource services; mutations are queued
// on the operator.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-client/internal/operator/actions"
	"github.com/carson-networks/finance-client/internal/service"
)

type State string

const (
	StateIdle            State = "idle"
	StateLoading         State = "loading"
	StateLoaded          State = "loaded"
	StateLoadFailed      State = "loadFailed"
	StateSubmitting      State = "submitting"
	StateSubmitSucceeded State = "submitSucceeded"
	StateSubmitFailed    State = "submitFailed"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// DefaultNotificationWindow is how long a notification stays visible.
const DefaultNotificationWindow = 3 * time.Second

// Notification is the single message slot of a controller. A newer
// notification replaces the current one.
type Notification struct {
	Kind      NotificationKind
	Text      string
	ExpiresAt time.Time
}

// Active reports whether the notification should still be shown at now.
func (n Notification) Active(now time.Time) bool {
	return n.Text != "" && now.Before(n.ExpiresAt)
}

// Sequence numbers loads so that a response overtaken by a newer request
// can be recognized and dropped. It is guarded by the owning controller.
type Sequence struct {
	current uint64
}

func (s *Sequence) Next() uint64 {
	s.current++
	return s.current
}

func (s *Sequence) IsCurrent(n uint64) bool {
	return s.current == n
}

// Submitter runs mutations. The operator delegator implements it.
type Submitter interface {
	Process(ctx context.Context, action actions.IAction) error
}

type Options struct {
	// Window defaults to DefaultNotificationWindow.
	Window time.Duration
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *logrus.Logger
}

func (o Options) withDefaults() Options {
	if o.Window <= 0 {
		o.Window = DefaultNotificationWindow
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	return o
}

// Failure is returned by controller operations that failed. Message is the
// text put in the notification slot; Err is the cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// core holds what every controller shares. Embedding controllers guard
// their own fields with mu as well.
type core struct {
	mu           sync.Mutex
	name         string
	state        State
	notification Notification
	seq          Sequence
	window       time.Duration
	now          func() time.Time
	logger       *logrus.Logger
}

func (c *core) init(name string, opts Options) {
	opts = opts.withDefaults()
	c.name = name
	c.state = StateIdle
	c.window = opts.Window
	c.now = opts.Now
	c.logger = opts.Logger
}

func (c *core) notifyLocked(kind NotificationKind, text string) {
	c.notification = Notification{
		Kind:      kind,
		Text:      text,
		ExpiresAt: c.now().Add(c.window),
	}
}

// activeNotificationLocked returns a copy of the notification while it is
// visible and clears it once expired.
func (c *core) activeNotificationLocked() *Notification {
	if !c.notification.Active(c.now()) {
		c.notification = Notification{}
		return nil
	}
	n := c.notification
	return &n
}

func (c *core) beginLoadLocked() uint64 {
	c.state = StateLoading
	return c.seq.Next()
}

// loadFailedLocked records a failed load and returns the Failure for it.
func (c *core) loadFailedLocked(err error, message string) error {
	c.state = StateLoadFailed
	c.logger.WithError(err).WithField("controller", c.name).Warn("Controller.load.failed")
	c.notifyLocked(NotificationError, message)
	return &Failure{Message: message, Err: err}
}

// rejectLocked records a submission refused before anything was sent.
// Validation failures are not logged.
func (c *core) rejectLocked(err error) error {
	message := service.MessageRequiredFields
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		message = vErr.Message
	}
	c.state = StateSubmitFailed
	c.notifyLocked(NotificationError, message)
	return &Failure{Message: message, Err: err}
}

// submitFailedLocked records a failed mutation. Validation errors raised
// by the services keep their own message; anything else shows fallback.
func (c *core) submitFailedLocked(err error, fallback string) error {
	if errors.Is(err, service.ErrValidation) {
		return c.rejectLocked(err)
	}
	c.state = StateSubmitFailed
	c.logger.WithError(err).WithField("controller", c.name).Warn("Controller.submit.failed")
	c.notifyLocked(NotificationError, fallback)
	return &Failure{Message: fallback, Err: err}
}

func (c *core) submitSucceededLocked(message string) {
	c.state = StateSubmitSucceeded
	c.notifyLocked(NotificationSuccess, message)
}

// submit runs action on the submitter with the lock released.
func (c *core) submit(ctx context.Context, submitter Submitter, action actions.IAction) error {
	c.mu.Lock()
	c.state = StateSubmitting
	c.mu.Unlock()

	return submitter.Process(ctx, action)
}
