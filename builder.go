package storefront

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shoply/storefront/internal/querycache"
	"github.com/shoply/storefront/internal/transport"
	"github.com/shoply/storefront/session"
	"golang.org/x/time/rate"
)

// Builder defines a public type used by the storefront client.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	httpClient   *http.Client
	sessionStore session.Store
	logger       zerolog.Logger
	nav          Navigator
	notify       Notifier
	confirm      Confirmer

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL overrides only the backend base URL, keeping the rest of the
// configuration as-is.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient injects the HTTP client used for every call. The client
// should carry a cookie jar; without one the backend session cookie is
// dropped between calls.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithRedis backs the session record with Redis instead of process memory.
// Ignored when WithSessionStore is also set.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithSessionStore injects a custom session store backend.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.sessionStore = store
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
//
// WithLogger does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithNavigator injects the navigation side-effect receiver.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.nav = nav
	return b
}

// WithNotifier injects the user-facing notice receiver.
func (b *Builder) WithNotifier(notify Notifier) *Builder {
	b.notify = notify
	return b
}

// WithConfirmer injects the delete-confirmation prompt. Without one,
// delete-style calls are auto-approved; interactive callers should always
// set this.
func (b *Builder) WithConfirmer(confirm Confirmer) *Builder {
	b.confirm = confirm
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	store := b.sessionStore
	if store == nil && b.redis != nil {
		store = session.NewRedisStore(b.redis, b.config.Session.RedisPrefix)
	}
	sessions := session.NewManager(store)

	nav := b.nav
	if nav == nil {
		nav = NavigatorFunc(func(Route) {})
	}
	notify := b.notify
	if notify == nil {
		notify = NotifierFunc(func(NoticeLevel, string) {})
	}
	confirm := b.confirm
	if confirm == nil {
		confirm = ConfirmerFunc(func(string) bool { return true })
	}

	var limiter *rate.Limiter
	if b.config.Throttle.Enabled {
		limiter = rate.NewLimiter(rate.Limit(b.config.Throttle.RPS), b.config.Throttle.Burst)
	}

	c := &Client{
		config:   b.config,
		log:      b.logger,
		sessions: sessions,
		metrics:  NewMetrics(b.config.Metrics),
		notify:   notify,
		nav:      nav,
		confirm:  confirm,
	}

	if b.config.Cache.Enabled {
		c.cache = querycache.New()
	}

	tc, err := transport.New(transport.Config{
		BaseURL:       b.config.API.BaseURL,
		Timeout:       b.config.API.Timeout,
		UserAgent:     b.config.API.UserAgent,
		RetryAttempts: b.config.Retry.Attempts,
		RetryDelay:    b.config.Retry.Delay,
	}, transport.Options{
		HTTPClient:    b.httpClient,
		Limiter:       limiter,
		Logger:        b.logger,
		OnAuthExpired: c.handleSessionExpiry,
	})
	if err != nil {
		return nil, err
	}
	c.transport = tc

	c.gate = newGate(sessions, nav, notify, c.metrics, b.logger)

	return c, nil
}
