package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Role is the coarse access tier assigned to a user. Role values are
// advisory UI gating only; the backend is the enforcement point.
//
// Role instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Role int

const (
	// RoleUnknown is an exported constant or variable used by the storefront client.
	RoleUnknown Role = 0
	// RoleCustomer is an exported constant or variable used by the storefront client.
	RoleCustomer Role = 1
	// RoleSeller is an exported constant or variable used by the storefront client.
	RoleSeller Role = 2
	// RoleAdmin is an exported constant or variable used by the storefront client.
	RoleAdmin Role = 3
)

// Valid reports whether r is one of the three defined role tiers. Any other
// value makes the surrounding identity invalid.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSeller || r == RoleAdmin
}

// String returns the display name for the role tier.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleSeller:
		return "Seller"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown"
	}
}

// ParseRole coerces the stored string form of a role back to a [Role].
// String forms are tolerated on read but never produced internally except
// as the serialized session value. A non-numeric or out-of-range value
// returns [ErrRoleInvalid].
func ParseRole(s string) (Role, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return RoleUnknown, fmt.Errorf("%w: %q", ErrRoleInvalid, s)
	}

	r := Role(n)
	if !r.Valid() {
		return RoleUnknown, fmt.Errorf("%w: %d", ErrRoleInvalid, n)
	}

	return r, nil
}

// Identity is the authenticated user held for the current session.
//
// Identity instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}
