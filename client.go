package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shoply/storefront/internal/querycache"
	"github.com/shoply/storefront/internal/transport"
	"github.com/shoply/storefront/session"
)

// Client defines a public type used by the storefront client.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config    Config
	log       zerolog.Logger
	sessions  *session.Manager
	gate      *Gate
	transport *transport.Client
	cache     *querycache.Cache
	metrics   *Metrics
	notify    Notifier
	nav       Navigator
	confirm   Confirmer

	watchMu     sync.Mutex
	watchCancel context.CancelFunc
	watchDone   chan struct{}

	expiryMu      sync.Mutex
	expiryHandled bool
}

// Sessions exposes the session manager holding the current identity.
func (c *Client) Sessions() *session.Manager {
	return c.sessions
}

// Gate exposes the access gate wired to this client's session manager.
func (c *Client) Gate() *Gate {
	return c.gate
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// CacheSize returns the number of cached query results.
func (c *Client) CacheSize() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

// Close stops the session watcher. Safe to call more than once.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.StopSessionWatch()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

// call issues a single request through the transport, recording latency
// and failures.
func (c *Client) call(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	data, err := c.transport.Do(ctx, method, path, body)
	c.metrics.Observe(MetricRequestLatency, time.Since(start))
	if err != nil {
		c.metricInc(MetricRequestFailure)
		return nil, c.wrapErr(err)
	}
	return data, nil
}

// callRetry is call with the fixed-delay retry policy applied. Used by
// read-style calls only; mutations go through call.
func (c *Client) callRetry(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	start := time.Now()
	data, err := c.transport.DoRetry(ctx, method, path, body)
	c.metrics.Observe(MetricRequestLatency, time.Since(start))
	if err != nil {
		c.metricInc(MetricRequestFailure)
		return nil, c.wrapErr(err)
	}
	return data, nil
}

// getJSON fetches path and decodes the data payload into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodePayload(data, out)
}

func decodePayload(data json.RawMessage, out any) error {
	if out == nil {
		return nil
	}
	if len(data) == 0 {
		return &Error{Kind: KindApplication, Message: "empty response payload"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindApplication, Message: "invalid response payload"}
	}
	return nil
}

// wrapErr converts a transport failure into the tagged *Error surfaced to
// callers. Already-tagged errors pass through unchanged.
func (c *Client) wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}

	if errors.Is(err, transport.ErrAuthRequired) {
		return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: err.Error()}
	}

	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) {
		return &Error{Kind: KindTransport, Status: statusErr.Status, Message: statusErr.Error()}
	}

	var appErr *transport.EnvelopeError
	if errors.As(err, &appErr) {
		return &Error{Kind: KindApplication, Message: appErr.Message}
	}

	return &Error{Kind: KindTransport, Message: err.Error()}
}

// handleSessionExpiry is the single path for forced session teardown:
// clear the record, notify, and schedule navigation to the entry route.
// The 401 transport hook and failed liveness probes both land here; the
// handled flag keeps a burst of concurrent 401s from stacking notices.
// Login re-arms it.
func (c *Client) handleSessionExpiry(ctx context.Context) {
	c.expiryMu.Lock()
	if c.expiryHandled {
		c.expiryMu.Unlock()
		return
	}
	c.expiryHandled = true
	c.expiryMu.Unlock()

	if err := c.sessions.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("session clear failed during expiry")
	}
	c.metricInc(MetricSessionExpired)
	c.log.Info().Msg("session expired")
	c.notify.Notify(NoticeWarning, "Your session has expired. Please log in again.")

	delay := c.config.Session.ExpiryRedirectDelay
	if delay <= 0 {
		c.nav.Navigate(RouteLogin)
		return
	}
	// The timer may fire after the initiating caller is long gone; the
	// navigator must tolerate that.
	time.AfterFunc(delay, func() {
		c.nav.Navigate(RouteLogin)
	})
}

// ReportError routes a failure the caller did not handle to the notifier.
// Auth failures stay quiet here: the expiry path has already notified.
func (c *Client) ReportError(err error) {
	if c == nil || err == nil {
		return
	}

	var tagged *Error
	if !errors.As(err, &tagged) {
		c.notify.Notify(NoticeError, "Something went wrong. Please try again.")
		return
	}

	switch tagged.Kind {
	case KindAuth:
		return
	case KindValidation, KindApplication:
		c.notify.Notify(NoticeError, tagged.Message)
	default:
		c.notify.Notify(NoticeError, "Something went wrong. Please try again.")
	}
}

func (c *Client) rearmExpiry() {
	c.expiryMu.Lock()
	c.expiryHandled = false
	c.expiryMu.Unlock()
}
