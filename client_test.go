package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shoply/storefront/internal/querycache"
	"github.com/shoply/storefront/session"
)

func newTestClient(t *testing.T, handler http.Handler, mutate func(*Builder)) (*Client, *recordedNav, *recordedNotices) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.Retry.Delay = 5 * time.Millisecond
	cfg.Session.ExpiryRedirectDelay = 0

	nav := &recordedNav{}
	notices := &recordedNotices{}
	b := New().
		WithConfig(cfg).
		WithLogger(zerolog.Nop()).
		WithNavigator(nav).
		WithNotifier(notices).
		WithMetricsEnabled(true)
	if mutate != nil {
		mutate(b)
	}

	client, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client, nav, notices
}

func TestLoginStoresSessionAndGatePasses(t *testing.T) {
	ctx := context.Background()
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"data":{"id":7,"email":"a@b.com","roleId":2}}`))
	}), nil)

	identity, err := client.Login(ctx, Credentials{Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if identity.UserID != 7 || identity.Email != "a@b.com" || identity.Role != session.RoleSeller {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	store := client.Sessions().Store()
	wantStored := map[string]string{
		session.KeyUserID:    "7",
		session.KeyUserEmail: "a@b.com",
		session.KeyUserRole:  "2",
		session.KeyLoggedIn:  "true",
	}
	for key, want := range wantStored {
		got, err := store.Get(ctx, key)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("stored %s = %q, want %q", key, got, want)
		}
	}

	gate := client.Gate()
	if !gate.CheckAuth(ctx) {
		t.Fatal("expected authenticated session after login")
	}
	if !gate.CheckRole(ctx, RoleSeller, RoleAdmin) {
		t.Fatal("expected seller role to pass seller-or-admin check")
	}
	if gate.CheckRole(ctx, RoleCustomer) {
		t.Fatal("expected seller role to fail customer-only check")
	}

	if got := client.MetricsSnapshot().Counters[MetricLoginSuccess]; got != 1 {
		t.Fatalf("login success counter = %d, want 1", got)
	}
}

func TestLoginRejectsInvalidInputWithoutNetwork(t *testing.T) {
	var hits atomic.Int64
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":{"id":1,"email":"a@b.com","roleId":1}}`))
	}), nil)

	tests := []struct {
		name  string
		creds Credentials
		valid bool
	}{
		{name: "malformed email", creds: Credentials{Email: "not-an-email", Password: "secret1"}, valid: false},
		{name: "five char password", creds: Credentials{Email: "a@b.com", Password: "12345"}, valid: false},
		{name: "six char password", creds: Credentials{Email: "a@b.com", Password: "123456"}, valid: true},
		{name: "missing email", creds: Credentials{Password: "secret1"}, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := hits.Load()
			_, err := client.Login(context.Background(), tt.creds)
			if tt.valid {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if hits.Load() != before {
				t.Fatal("invalid input must not reach the network")
			}
		})
	}
}

func TestSearchProductsCachesResults(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":[{"id":1,"name":"Shoe"}]}`))
	}), nil)

	first, err := client.SearchProducts(ctx, "Shoes")
	if err != nil {
		t.Fatal(err)
	}
	// Same query with different case and padding answers from the cache.
	second, err := client.SearchProducts(ctx, "  shoes ")
	if err != nil {
		t.Fatal(err)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected one backend hit, got %d", hits.Load())
	}
	if len(first) != 1 || len(second) != 1 || second[0].Name != "Shoe" {
		t.Fatalf("unexpected results: first=%v second=%v", first, second)
	}
	if client.CacheSize() != 1 {
		t.Fatalf("cache size = %d, want 1", client.CacheSize())
	}

	counters := client.MetricsSnapshot().Counters
	if counters[MetricSearchCacheMiss] != 1 || counters[MetricSearchCacheHit] != 1 {
		t.Fatalf("cache counters hit=%d miss=%d, want 1/1",
			counters[MetricSearchCacheHit], counters[MetricSearchCacheMiss])
	}
}

func TestProductListingPaths(t *testing.T) {
	ctx := context.Background()
	var path atomic.Value
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		w.Write([]byte(`{"data":[]}`))
	}), nil)

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{
			name: "by category",
			call: func() error { _, err := client.ProductsByCategory(ctx, 5); return err },
			want: "/productsByCategory/5",
		},
		{
			name: "by seller",
			call: func() error { _, err := client.ProductsBySeller(ctx, 9); return err },
			want: "/productsBySeller/9",
		},
		{
			name: "full list",
			call: func() error { _, err := client.Products(ctx); return err },
			want: "/products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatal(err)
			}
			if got := path.Load(); got != tt.want {
				t.Fatalf("request hit %v, want %s", got, tt.want)
			}
		})
	}
}

func TestSearchProductsCorruptCacheEntryCountsOneMiss(t *testing.T) {
	ctx := context.Background()
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"name":"Shoe"}]}`))
	}), nil)

	// A stored payload that no longer unmarshals must refetch and count as
	// exactly one miss, never a hit.
	client.cache.Put(querycache.Key("search", "shoes"), []byte(`{not json`))

	results, err := client.SearchProducts(ctx, "shoes")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected refetched results, got %v", results)
	}

	counters := client.MetricsSnapshot().Counters
	if counters[MetricSearchCacheHit] != 0 {
		t.Fatalf("cache hit counter = %d, want 0", counters[MetricSearchCacheHit])
	}
	if counters[MetricSearchCacheMiss] != 1 {
		t.Fatalf("cache miss counter = %d, want 1", counters[MetricSearchCacheMiss])
	}
}

func TestSearchProductsBlankQueryListsAll(t *testing.T) {
	var path atomic.Value
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		w.Write([]byte(`{"data":[]}`))
	}), nil)

	if _, err := client.SearchProducts(context.Background(), "   "); err != nil {
		t.Fatal(err)
	}
	if got := path.Load(); got != "/products" {
		t.Fatalf("blank query hit %v, want /products", got)
	}
	if client.CacheSize() != 0 {
		t.Fatal("blank query must not populate the cache")
	}
}

func TestDeleteProductDeclinedConfirmation(t *testing.T) {
	var hits atomic.Int64
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":true}`))
	}), func(b *Builder) {
		b.WithConfirmer(ConfirmerFunc(func(string) bool { return false }))
	})

	err := client.DeleteProduct(context.Background(), 4)
	if !errors.Is(err, ErrDeleteNotConfirmed) {
		t.Fatalf("expected ErrDeleteNotConfirmed, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatal("declined delete must not reach the network")
	}
	if got := client.MetricsSnapshot().Counters[MetricDeleteDeclined]; got != 1 {
		t.Fatalf("delete declined counter = %d, want 1", got)
	}
}

func TestUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	ctx := context.Background()
	client, nav, notices := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"session expired"}`))
	}), nil)

	if err := client.Sessions().SetUserSession(ctx, "7", "a@b.com", session.RoleCustomer); err != nil {
		t.Fatal(err)
	}

	_, err := client.Products(ctx)
	if !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if client.Sessions().IsAuthenticated(ctx) {
		t.Fatal("expected session cleared after 401")
	}
	if len(nav.routes) != 1 || nav.routes[0] != RouteLogin {
		t.Fatalf("expected navigation to login, got %v", nav.routes)
	}
	if len(notices.messages) != 1 || notices.messages[0] != "Your session has expired. Please log in again." {
		t.Fatalf("unexpected notices: %v", notices.messages)
	}
	if notices.levels[0] != NoticeWarning {
		t.Fatalf("expected warning notice, got %v", notices.levels[0])
	}

	// A second 401 while the expiry is already handled stays quiet.
	if _, err := client.Products(ctx); err == nil {
		t.Fatal("expected second call to fail too")
	}
	if len(notices.messages) != 1 {
		t.Fatalf("expected expiry handled once, got notices %v", notices.messages)
	}
}

func TestLogoutClearsSessionDespiteServerError(t *testing.T) {
	ctx := context.Background()
	client, nav, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}), nil)

	if err := client.Sessions().SetUserSession(ctx, "7", "a@b.com", session.RoleCustomer); err != nil {
		t.Fatal(err)
	}
	if err := client.Logout(ctx); err != nil {
		t.Fatalf("logout must succeed locally, got %v", err)
	}
	if client.Sessions().IsAuthenticated(ctx) {
		t.Fatal("expected session cleared after logout")
	}
	if len(nav.routes) == 0 || nav.routes[len(nav.routes)-1] != RouteLogin {
		t.Fatalf("expected navigation to login, got %v", nav.routes)
	}
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		kind     ErrorKind
	}{
		{name: "server error", status: 500, body: `{"error":"boom"}`, sentinel: ErrTransport, kind: KindTransport},
		{name: "application error on 200", status: 200, body: `{"error":"out of stock"}`, sentinel: ErrApplication, kind: KindApplication},
		{name: "unauthorized", status: 401, body: `{"error":"expired"}`, sentinel: ErrAuthenticationRequired, kind: KindAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}), nil)

			_, err := client.Product(context.Background(), 1)
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("errors.Is(%v, sentinel) = false", err)
			}
			var tagged *Error
			if !errors.As(err, &tagged) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if tagged.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tagged.Kind, tt.kind)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantNotice string
	}{
		{name: "nil is quiet", err: nil, wantNotice: ""},
		{name: "auth stays quiet", err: &Error{Kind: KindAuth, Message: "expired"}, wantNotice: ""},
		{name: "application surfaces message", err: &Error{Kind: KindApplication, Message: "out of stock"}, wantNotice: "out of stock"},
		{name: "validation surfaces message", err: &Error{Kind: KindValidation, Message: "email is required"}, wantNotice: "email is required"},
		{name: "transport gets generic notice", err: &Error{Kind: KindTransport, Status: 500}, wantNotice: "Something went wrong. Please try again."},
		{name: "untagged gets generic notice", err: errors.New("boom"), wantNotice: "Something went wrong. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, notices := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":null}`))
			}), nil)

			client.ReportError(tt.err)
			if tt.wantNotice == "" {
				if len(notices.messages) != 0 {
					t.Fatalf("expected no notice, got %v", notices.messages)
				}
				return
			}
			if len(notices.messages) != 1 || notices.messages[0] != tt.wantNotice {
				t.Fatalf("notices = %v, want [%q]", notices.messages, tt.wantNotice)
			}
		})
	}
}

func TestFilterProductsBuildsQueryString(t *testing.T) {
	var query atomic.Value
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		w.Write([]byte(`{"data":[]}`))
	}), nil)

	_, err := client.FilterProducts(context.Background(), ProductFilter{
		CategoryID: 3,
		MaxPrice:   50,
	})
	if err != nil {
		t.Fatal(err)
	}

	got := query.Load().(string)
	if got != "category=3&maxPrice=50" {
		t.Fatalf("query = %q, want category=3&maxPrice=50", got)
	}
}
