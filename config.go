package storefront

import (
	"errors"
	"net/url"
	"time"
)

// Config defines a public type used by the storefront client.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API      APIConfig
	Retry    RetryConfig
	Session  SessionConfig
	Liveness LivenessConfig
	Cache    CacheConfig
	Throttle ThrottleConfig
	Metrics  MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by the storefront client.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
RETRY CONFIG
====================================
*/

// RetryConfig defines a public type used by the storefront client.
//
// RetryConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RetryConfig struct {
	// Attempts is the retry budget for read-style calls: a failing call is
	// issued Attempts+1 times in total before the last error propagates.
	Attempts int
	Delay    time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by the storefront client.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
	// ExpiryRedirectDelay is how long forced session expiry waits before
	// navigating to the login route. Zero navigates immediately.
	ExpiryRedirectDelay time.Duration
}

/*
====================================
LIVENESS CONFIG
====================================
*/

// LivenessConfig defines a public type used by the storefront client.
//
// LivenessConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LivenessConfig struct {
	Interval time.Duration
	// UseTokenExpiry schedules the next probe just ahead of the session
	// cookie's exp claim when the cookie parses as a JWT. Claims are read
	// unverified; the probe outcome is what decides anything.
	UseTokenExpiry bool
}

/*
====================================
CACHE / THROTTLE / METRICS
====================================
*/

// CacheConfig defines a public type used by the storefront client.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	Enabled bool
}

// ThrottleConfig defines a public type used by the storefront client.
//
// ThrottleConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ThrottleConfig struct {
	Enabled bool
	// RPS is the sustained outbound request rate; Burst bounds transient
	// spikes.
	RPS   float64
	Burst int
}

// MetricsConfig defines a public type used by the storefront client.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 5 * time.Second,
		},
		Retry: RetryConfig{
			Attempts: 3,
			Delay:    time.Second,
		},
		Session: SessionConfig{
			RedisPrefix:         "sf",
			ExpiryRedirectDelay: 3 * time.Second,
		},
		Liveness: LivenessConfig{
			Interval:       5 * time.Minute,
			UseTokenExpiry: true,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Throttle: ThrottleConfig{
			Enabled: false,
			RPS:     10,
			Burst:   20,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the baseline configuration: 5s request timeout,
// retry budget 3 with a 1s delay, 5-minute liveness probes, query cache on.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	// All fields are value types today; clone is a plain copy kept as a
	// seam so later reference fields cannot leak caller aliasing.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// API
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	if c.API.Timeout <= 0 {
		return errors.New("API Timeout must be > 0")
	}

	// Retry
	if c.Retry.Attempts < 0 {
		return errors.New("Retry Attempts must be >= 0")
	}
	if c.Retry.Attempts > 0 && c.Retry.Delay <= 0 {
		return errors.New("Retry Delay must be > 0 when Attempts > 0")
	}

	// Session
	if c.Session.ExpiryRedirectDelay < 0 {
		return errors.New("Session ExpiryRedirectDelay must be >= 0")
	}

	// Liveness
	if c.Liveness.Interval < 0 {
		return errors.New("Liveness Interval must be >= 0")
	}

	// Throttle
	if c.Throttle.Enabled {
		if c.Throttle.RPS <= 0 {
			return errors.New("Throttle RPS must be > 0 when Enabled is true")
		}
		if c.Throttle.Burst < 1 {
			return errors.New("Throttle Burst must be >= 1 when Enabled is true")
		}
	}

	return nil
}
