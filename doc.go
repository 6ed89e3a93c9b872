// Package storefront provides the Go client runtime for the marketplace
// backend: session state, role-gated access checks, and a JSON request
// client with fixed-delay retry and uniform error surfacing.
//
// The package is the public surface. It exposes [Client], [Builder],
// [Config], [Gate], and value types (Error, Product, Category, User). The
// request dispatch core and the query cache live under internal/ and are
// never exported; the session record lives in the session subpackage.
//
// # Not a security boundary
//
// Role checks here are advisory UI behavior. The backend owns all
// authorization enforcement; nothing in this package claims to stop a
// determined caller from issuing a request it "should not".
//
// # What this package must NOT do
//
//   - Render anything: navigation, notices, and confirmation prompts are
//     injected collaborators, not implementations.
//   - Re-inspect HTTP status codes downstream of the request client; every
//     failure is classified once, at the transport boundary.
//   - Cache mutations; only repeatable read queries go through the query
//     cache.
package storefront
