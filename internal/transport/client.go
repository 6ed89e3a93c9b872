package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// envelope is the {data,error} response shape returned by every backend
// endpoint. Exactly one of the two fields is meaningfully populated.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Config holds transport tuning parameters.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	UserAgent     string
	RetryAttempts int
	RetryDelay    time.Duration
}

// Options carries the injected collaborators for a [Client].
type Options struct {
	// HTTPClient overrides the default client. When nil a client with a
	// fresh cookie jar and the configured timeout is built; the jar is what
	// carries the backend session cookie between calls.
	HTTPClient *http.Client

	// Limiter throttles outbound requests when non-nil.
	Limiter *rate.Limiter

	Logger zerolog.Logger

	// OnAuthExpired fires once per observed 401 before the error returns.
	OnAuthExpired func(ctx context.Context)
}

// Client dispatches JSON requests against the backend and reduces every
// response to the failure classification described in the package docs.
type Client struct {
	http          *http.Client
	baseURL       string
	userAgent     string
	retryAttempts int
	retryDelay    time.Duration
	limiter       *rate.Limiter
	log           zerolog.Logger
	onAuthExpired func(ctx context.Context)
}

// New creates a transport [Client] from cfg and opts.
func New(cfg Config, opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		}
	}

	return &Client{
		http:          httpClient,
		baseURL:       cfg.BaseURL,
		userAgent:     cfg.UserAgent,
		retryAttempts: cfg.RetryAttempts,
		retryDelay:    cfg.RetryDelay,
		limiter:       opts.Limiter,
		log:           opts.Logger,
		onAuthExpired: opts.OnAuthExpired,
	}, nil
}

// CookieJar exposes the jar carrying the backend session cookie. Returns
// nil when the injected HTTP client has no jar.
func (c *Client) CookieJar() http.CookieJar {
	if c == nil || c.http == nil {
		return nil
	}
	return c.http.Jar
}

// Do issues a single request and returns the envelope data payload.
// Failures come back classified per the package docs; no retry happens
// here.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	// Parse the envelope regardless of status; a non-2xx body is optional.
	var env envelope
	_ = json.Unmarshal(raw, &env)

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onAuthExpired != nil {
			c.onAuthExpired(ctx)
		}
		if env.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrAuthRequired, env.Error)
		}
		return nil, ErrAuthRequired
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Status: resp.StatusCode, Message: env.Error}
	}

	if env.Error != "" {
		return nil, &EnvelopeError{Message: env.Error}
	}

	return env.Data, nil
}

// DoRetry issues the request with the fixed-delay retry policy. 401 and
// application-level failures are terminal on the first observation; any
// other failure is retried until the budget is spent, then the last error
// propagates unchanged. Context cancellation aborts the wait.
func (c *Client) DoRetry(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		data, err := c.Do(ctx, method, path, body)
		if err == nil {
			return data, nil
		}

		if errors.Is(err, ErrAuthRequired) {
			return nil, err
		}
		var appErr *EnvelopeError
		if errors.As(err, &appErr) {
			return nil, err
		}

		lastErr = err
		if attempt >= c.retryAttempts {
			return nil, lastErr
		}

		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("attempts_left", c.retryAttempts-attempt).
			Err(err).
			Msg("retrying request")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}
}
