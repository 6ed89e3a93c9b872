package storefront

import (
	"context"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StartSessionWatch launches the background liveness watcher. The watcher
// probes the session validation endpoint on a fixed interval, waking
// early when the session cookie carries a token expiry inside the
// current interval. Calling it while a watcher is already running is a
// no-op.
func (c *Client) StartSessionWatch(ctx context.Context) {
	if c == nil || c.config.Liveness.Interval <= 0 {
		return
	}

	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	if c.watchCancel != nil {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.watchCancel = cancel
	c.watchDone = done

	go c.sessionWatchLoop(watchCtx, done)
	c.log.Debug().Dur("interval", c.config.Liveness.Interval).Msg("session watch started")
}

// StopSessionWatch stops the watcher and waits for it to exit. Safe to
// call when no watcher is running.
func (c *Client) StopSessionWatch() {
	c.watchMu.Lock()
	cancel := c.watchCancel
	done := c.watchDone
	c.watchCancel = nil
	c.watchDone = nil
	c.watchMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Client) sessionWatchLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(c.nextProbeDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := c.ValidateSession(ctx); err != nil {
			c.log.Debug().Err(err).Msg("session probe failed")
		}
		timer.Reset(c.nextProbeDelay())
	}
}

// nextProbeDelay returns the wait before the next probe: the configured
// interval, shortened when the session token expires sooner. A token
// already past its expiry probes almost immediately so the expiry path
// runs promptly.
func (c *Client) nextProbeDelay() time.Duration {
	interval := c.config.Liveness.Interval

	if !c.config.Liveness.UseTokenExpiry {
		return interval
	}
	exp, ok := c.sessionTokenExpiry()
	if !ok {
		return interval
	}

	until := time.Until(exp)
	if until <= 0 {
		return time.Second
	}
	if until < interval {
		return until
	}
	return interval
}

// sessionTokenExpiry scans the cookie jar for a JWT-shaped cookie and
// reads its exp claim without verifying the signature. The client never
// trusts the claim for authorization, only for probe scheduling.
func (c *Client) sessionTokenExpiry() (time.Time, bool) {
	jar := c.transport.CookieJar()
	if jar == nil {
		return time.Time{}, false
	}
	base, err := url.Parse(c.config.API.BaseURL)
	if err != nil {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	for _, cookie := range jar.Cookies(base) {
		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(cookie.Value, claims); err != nil {
			continue
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			continue
		}
		return exp.Time, true
	}
	return time.Time{}, false
}
