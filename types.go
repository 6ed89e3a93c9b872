package storefront

import (
	"net/url"
	"strconv"

	"github.com/shoply/storefront/session"
)

// Role is re-exported from the session subpackage so callers can gate on
// tiers without a second import.
type Role = session.Role

const (
	// RoleCustomer is an exported constant or variable used by the storefront client.
	RoleCustomer = session.RoleCustomer
	// RoleSeller is an exported constant or variable used by the storefront client.
	RoleSeller = session.RoleSeller
	// RoleAdmin is an exported constant or variable used by the storefront client.
	RoleAdmin = session.RoleAdmin
)

// Route is a navigation target resolved by the injected [Navigator]. The
// client decides where to go; the navigator decides what that means
// (a page URL, a TUI screen, a test recording).
//
// Route instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Route string

const (
	// RouteLogin is an exported constant or variable used by the storefront client.
	RouteLogin Route = "login"
	// RouteDashboard is an exported constant or variable used by the storefront client.
	RouteDashboard Route = "dashboard"
	// RouteProducts is an exported constant or variable used by the storefront client.
	RouteProducts Route = "products"
	// RouteSeller is an exported constant or variable used by the storefront client.
	RouteSeller Route = "seller"
	// RouteAdmin is an exported constant or variable used by the storefront client.
	RouteAdmin Route = "admin"
)

// NoticeLevel grades a user-facing notice.
//
// NoticeLevel instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type NoticeLevel uint8

const (
	// NoticeSuccess is an exported constant or variable used by the storefront client.
	NoticeSuccess NoticeLevel = iota
	// NoticeError is an exported constant or variable used by the storefront client.
	NoticeError
	// NoticeWarning is an exported constant or variable used by the storefront client.
	NoticeWarning
)

// String describes the string operation and its observable behavior.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	case NoticeWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Navigator receives navigation side effects: the gate redirecting a denied
// caller, logout returning to the entry page, forced session expiry.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to the [Navigator] interface.
type NavigatorFunc func(route Route)

// Navigate calls f.
func (f NavigatorFunc) Navigate(route Route) { f(route) }

// Notifier receives user-facing notices in place of the alert banner.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// NotifierFunc adapts a function to the [Notifier] interface.
type NotifierFunc func(level NoticeLevel, message string)

// Notify calls f.
func (f NotifierFunc) Notify(level NoticeLevel, message string) { f(level, message) }

// Confirmer answers the confirmation prompt that must precede every
// delete-style call for products and users. Returning false aborts the
// operation before any network call fires.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the [Confirmer] interface.
type ConfirmerFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

/*
====================================
DOMAIN RECORDS
====================================
*/

// Product defines a public type used by the storefront client.
//
// Product instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id"`
	SellerID    int64   `json:"seller_id"`
	ImageURL    string  `json:"imageURL,omitempty"`
}

// Category defines a public type used by the storefront client.
//
// Category instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User defines a public type used by the storefront client.
//
// User instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type User struct {
	ID     int64  `json:"id"`
	Email  string `json:"email"`
	RoleID int    `json:"roleId"`
}

/*
====================================
REQUEST INPUTS
====================================
*/

// Credentials is the login input. Validation runs before any network call:
// a malformed email or a password under six characters never leaves the
// client.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignupInput is the account creation input.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	RoleID   int    `json:"roleId" validate:"required,oneof=1 2 3"`
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	CategoryID  int64   `json:"category_id" validate:"required"`
	SellerID    int64   `json:"seller_id,omitempty"`
	ImageURL    string  `json:"imageURL,omitempty"`
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// UserUpdate is the update payload for a user. Zero fields are omitted
// from both validation and the request body.
type UserUpdate struct {
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
	RoleID int    `json:"roleId,omitempty" validate:"omitempty,oneof=1 2 3"`
}

// ProductFilter carries the filter query parameters. Zero fields are
// skipped when building the query string.
type ProductFilter struct {
	CategoryID int64
	MinPrice   float64
	MaxPrice   float64
	SortBy     string
}

// Values renders the non-zero filter fields as query parameters.
func (f ProductFilter) Values() url.Values {
	v := url.Values{}
	if f.CategoryID != 0 {
		v.Set("category", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.MinPrice != 0 {
		v.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != 0 {
		v.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	return v
}
