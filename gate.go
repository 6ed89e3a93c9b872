package storefront

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shoply/storefront/session"
)

// Gate is the pair of guard checks a protected page controller evaluates
// before doing anything else. Both checks resolve synchronously; a failed
// check notifies, navigates, and returns false — callers must stop on
// false, the gate never panics or throws to force the issue.
type Gate struct {
	sessions *session.Manager
	nav      Navigator
	notify   Notifier
	metrics  *Metrics
	log      zerolog.Logger
}

// NewGate creates a standalone [Gate]. A client built through [Builder]
// already carries one wired to its session manager; this constructor exists
// for callers composing their own.
func NewGate(sessions *session.Manager, nav Navigator, notify Notifier) *Gate {
	return newGate(sessions, nav, notify, nil, zerolog.Nop())
}

func newGate(sessions *session.Manager, nav Navigator, notify Notifier, metrics *Metrics, log zerolog.Logger) *Gate {
	if sessions == nil {
		sessions = session.NewManager(nil)
	}
	if nav == nil {
		nav = NavigatorFunc(func(Route) {})
	}
	if notify == nil {
		notify = NotifierFunc(func(NoticeLevel, string) {})
	}
	return &Gate{sessions: sessions, nav: nav, notify: notify, metrics: metrics, log: log}
}

// CheckAuth returns true iff a session with both a user id and a role is
// present. On false it surfaces a "please log in" notice and navigates to
// the public entry route; the side effect is navigation, not an error.
func (g *Gate) CheckAuth(ctx context.Context) bool {
	if g.sessions.IsAuthenticated(ctx) {
		return true
	}

	g.metrics.Inc(MetricGateDenied)
	g.log.Debug().Msg("auth check failed")
	g.notify.Notify(NoticeError, "Please log in to access this page")
	g.nav.Navigate(RouteLogin)
	return false
}

// CheckRole returns true iff the stored role parses and is a member of
// allowed. On false it surfaces a "no permission" notice and navigates to
// the dashboard exactly once. String-coerced role values are tolerated on
// read; an unparsable role is simply not a member of anything.
func (g *Gate) CheckRole(ctx context.Context, allowed ...Role) bool {
	raw, err := g.sessions.RawRole(ctx)
	if err == nil {
		if role, parseErr := session.ParseRole(raw); parseErr == nil {
			for _, a := range allowed {
				if role == a {
					return true
				}
			}
		}
	}

	g.metrics.Inc(MetricGateDenied)
	g.log.Debug().Str("role", raw).Msg("role check failed")
	g.notify.Notify(NoticeError, "You do not have permission to access this page")
	g.nav.Navigate(RouteDashboard)
	return false
}

// RedirectByRole navigates to the landing route for the given role. Pure
// routing decision, no network call.
func (g *Gate) RedirectByRole(role Role) {
	g.nav.Navigate(routeForRole(role))
}

func routeForRole(role Role) Route {
	switch role {
	case RoleCustomer:
		return RouteProducts
	case RoleSeller:
		return RouteSeller
	case RoleAdmin:
		return RouteAdmin
	default:
		return RouteDashboard
	}
}
