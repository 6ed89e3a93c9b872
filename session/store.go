package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// Keys under which the session record is persisted. The names match the
// login payload fields so a stored record reads back the way it was handed
// over by the backend.
const (
	// KeyUserID is an exported constant or variable used by the storefront client.
	KeyUserID = "userId"
	// KeyUserEmail is an exported constant or variable used by the storefront client.
	KeyUserEmail = "userEmail"
	// KeyUserRole is an exported constant or variable used by the storefront client.
	KeyUserRole = "userRole"
	// KeyLoggedIn is an exported constant or variable used by the storefront client.
	KeyLoggedIn = "isLoggedIn"
)

var (
	// ErrInvalidSession is an exported constant or variable used by the storefront client.
	ErrInvalidSession = errors.New("invalid session")
	// ErrRoleInvalid is an exported constant or variable used by the storefront client.
	ErrRoleInvalid = errors.New("invalid role")
	// ErrStoreUnavailable is an exported constant or variable used by the storefront client.
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Store is the raw key/value surface behind a session record. Absent keys
// read back as the empty string, not an error — every derived check treats
// empty and absent the same way.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Manager layers the identity operations over a raw [Store]. It owns the
// serialization convention (all values stored as strings, role written last)
// but no policy.
type Manager struct {
	store Store
}

// NewManager creates a [Manager] over the given store. A nil store falls
// back to a fresh [MemoryStore].
func NewManager(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{store: store}
}

// Store exposes the underlying raw store for direct key access.
func (m *Manager) Store() Store {
	return m.store
}

// IsAuthenticated reports whether both a user id and a role value are
// present and non-empty. Store errors read as not authenticated.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	id, err := m.store.Get(ctx, KeyUserID)
	if err != nil || id == "" {
		return false
	}

	role, err := m.store.Get(ctx, KeyUserRole)
	if err != nil || role == "" {
		return false
	}

	return true
}

// LoggedIn reports whether the logged-in flag is set. The liveness watcher
// uses it to skip probes for sessions that were never established.
func (m *Manager) LoggedIn(ctx context.Context) bool {
	v, err := m.store.Get(ctx, KeyLoggedIn)
	return err == nil && v == "true"
}

// CurrentUser reads the stored identity. A missing user id, a non-numeric
// id, or a role that fails [ParseRole] returns [ErrInvalidSession]: callers
// must treat the session as absent, not partially valid.
func (m *Manager) CurrentUser(ctx context.Context) (Identity, error) {
	rawID, err := m.store.Get(ctx, KeyUserID)
	if err != nil {
		return Identity{}, err
	}
	if rawID == "" {
		return Identity{}, fmt.Errorf("%w: no user id", ErrInvalidSession)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: user id %q", ErrInvalidSession, rawID)
	}

	email, err := m.store.Get(ctx, KeyUserEmail)
	if err != nil {
		return Identity{}, err
	}

	rawRole, err := m.store.Get(ctx, KeyUserRole)
	if err != nil {
		return Identity{}, err
	}

	role, err := ParseRole(rawRole)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return Identity{UserID: id, Email: email, Role: role}, nil
}

// SetUserSession writes the full session record. The role key goes last so
// that [Manager.IsAuthenticated] can never observe a half-set record as a
// valid session.
func (m *Manager) SetUserSession(ctx context.Context, userID, email string, role Role) error {
	if err := m.store.Set(ctx, KeyUserID, userID); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyUserEmail, email); err != nil {
		return err
	}
	if err := m.store.Set(ctx, KeyLoggedIn, "true"); err != nil {
		return err
	}
	return m.store.Set(ctx, KeyUserRole, strconv.Itoa(int(role)))
}

// RawRole returns the stored role value without parsing it. The gate uses
// it to apply string coercion on its own terms.
func (m *Manager) RawRole(ctx context.Context) (string, error) {
	return m.store.Get(ctx, KeyUserRole)
}

// Clear removes every session key. Used by logout and forced session
// expiry.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Clear(ctx)
}
