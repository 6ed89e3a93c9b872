package storefront

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shoply/storefront/session"
)

func TestBuilderDefaultsToMemoryStore(t *testing.T) {
	client, err := New().Build()
	if err != nil {
		t.Fatalf("build with defaults failed: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Sessions().SetUserSession(ctx, "1", "a@b.com", session.RoleCustomer); err != nil {
		t.Fatal(err)
	}
	if !client.Sessions().IsAuthenticated(ctx) {
		t.Fatal("memory-backed session manager must round-trip")
	}
}

func TestBuilderRejectsReuse(t *testing.T) {
	b := New()
	if _, err := b.Build(); err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second build to fail")
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	_, err := New().WithBaseURL("   ").Build()
	if !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("expected ErrMissingBaseURL, got %v", err)
	}
}

func TestBuilderWiresRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client, err := New().WithRedis(rdb).Build()
	if err != nil {
		t.Fatalf("build with redis failed: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Sessions().SetUserSession(ctx, "9", "r@x.com", session.RoleAdmin); err != nil {
		t.Fatal(err)
	}

	// The session must live in redis, not in process memory.
	if !mr.Exists("sf:session") {
		t.Fatalf("expected session hash in redis, keys: %v", mr.Keys())
	}
	identity, err := client.Sessions().CurrentUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if identity.UserID != 9 || identity.Role != session.RoleAdmin {
		t.Fatalf("unexpected identity from redis store: %+v", identity)
	}
}

func TestBuilderCustomStoreWinsOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	custom := session.NewMemoryStore()
	client, err := New().WithRedis(rdb).WithSessionStore(custom).Build()
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Sessions().SetUserSession(ctx, "2", "m@x.com", session.RoleSeller); err != nil {
		t.Fatal(err)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("explicit store must win over redis, found keys %v", mr.Keys())
	}
	if got, _ := custom.Get(ctx, session.KeyUserID); got != "2" {
		t.Fatalf("custom store userId = %q, want 2", got)
	}
}
