package storefront

import (
	"context"
	"testing"

	"github.com/shoply/storefront/session"
)

type recordedNav struct {
	routes []Route
}

func (r *recordedNav) Navigate(route Route) {
	r.routes = append(r.routes, route)
}

type recordedNotices struct {
	levels   []NoticeLevel
	messages []string
}

func (r *recordedNotices) Notify(level NoticeLevel, message string) {
	r.levels = append(r.levels, level)
	r.messages = append(r.messages, message)
}

func TestGateCheckAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("authenticated passes silently", func(t *testing.T) {
		mgr := session.NewManager(nil)
		if err := mgr.SetUserSession(ctx, "7", "a@b.com", session.RoleCustomer); err != nil {
			t.Fatal(err)
		}
		nav := &recordedNav{}
		notices := &recordedNotices{}
		gate := NewGate(mgr, nav, notices)

		if !gate.CheckAuth(ctx) {
			t.Fatal("expected CheckAuth to pass for a complete session")
		}
		if len(nav.routes) != 0 || len(notices.messages) != 0 {
			t.Fatalf("expected no side effects, got nav=%v notices=%v", nav.routes, notices.messages)
		}
	})

	t.Run("anonymous redirects to login", func(t *testing.T) {
		nav := &recordedNav{}
		notices := &recordedNotices{}
		gate := NewGate(session.NewManager(nil), nav, notices)

		if gate.CheckAuth(ctx) {
			t.Fatal("expected CheckAuth to fail with no session")
		}
		if len(nav.routes) != 1 || nav.routes[0] != RouteLogin {
			t.Fatalf("expected single navigation to login, got %v", nav.routes)
		}
		if len(notices.messages) != 1 || notices.messages[0] != "Please log in to access this page" {
			t.Fatalf("unexpected notice: %v", notices.messages)
		}
		if notices.levels[0] != NoticeError {
			t.Fatalf("expected error-level notice, got %v", notices.levels[0])
		}
	})
}

func TestGateCheckRole(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		role    session.Role
		allowed []Role
		want    bool
	}{
		{name: "seller allowed for seller pages", role: session.RoleSeller, allowed: []Role{RoleSeller}, want: true},
		{name: "seller allowed in admin-or-seller set", role: session.RoleSeller, allowed: []Role{RoleSeller, RoleAdmin}, want: true},
		{name: "customer denied for seller pages", role: session.RoleCustomer, allowed: []Role{RoleSeller}, want: false},
		{name: "admin denied for customer-only pages", role: session.RoleAdmin, allowed: []Role{RoleCustomer}, want: false},
		{name: "empty allowed set denies everyone", role: session.RoleAdmin, allowed: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := session.NewManager(nil)
			if err := mgr.SetUserSession(ctx, "1", "u@x.com", tt.role); err != nil {
				t.Fatal(err)
			}
			nav := &recordedNav{}
			notices := &recordedNotices{}
			gate := NewGate(mgr, nav, notices)

			got := gate.CheckRole(ctx, tt.allowed...)
			if got != tt.want {
				t.Fatalf("CheckRole = %v, want %v", got, tt.want)
			}
			if tt.want {
				if len(nav.routes) != 0 {
					t.Fatalf("expected no navigation on pass, got %v", nav.routes)
				}
				return
			}
			if len(nav.routes) != 1 || nav.routes[0] != RouteDashboard {
				t.Fatalf("expected single navigation to dashboard, got %v", nav.routes)
			}
			if notices.messages[0] != "You do not have permission to access this page" {
				t.Fatalf("unexpected notice: %q", notices.messages[0])
			}
		})
	}
}

func TestGateCheckRoleUnparsableRoleDenies(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(nil)
	store := mgr.Store()
	if err := store.Set(ctx, session.KeyUserID, "7"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, session.KeyUserRole, "not-a-role"); err != nil {
		t.Fatal(err)
	}

	nav := &recordedNav{}
	gate := NewGate(mgr, nav, &recordedNotices{})
	if gate.CheckRole(ctx, RoleCustomer, RoleSeller, RoleAdmin) {
		t.Fatal("expected unparsable role to fail every membership check")
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteDashboard {
		t.Fatalf("expected navigation to dashboard, got %v", nav.routes)
	}
}

func TestGateRedirectByRole(t *testing.T) {
	tests := []struct {
		role Role
		want Route
	}{
		{role: RoleCustomer, want: RouteProducts},
		{role: RoleSeller, want: RouteSeller},
		{role: RoleAdmin, want: RouteAdmin},
		{role: session.RoleUnknown, want: RouteDashboard},
		{role: Role(99), want: RouteDashboard},
	}

	for _, tt := range tests {
		nav := &recordedNav{}
		gate := NewGate(session.NewManager(nil), nav, &recordedNotices{})
		gate.RedirectByRole(tt.role)
		if len(nav.routes) != 1 || nav.routes[0] != tt.want {
			t.Fatalf("RedirectByRole(%v) navigated %v, want [%v]", tt.role, nav.routes, tt.want)
		}
	}
}
