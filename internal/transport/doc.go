// Package transport provides internal primitives for dispatching JSON
// requests against the marketplace backend: envelope decoding, uniform
// failure classification, and the fixed-delay retry loop used by read-style
// calls.
//
// # Failure classification
//
// Every response is reduced to one of three shapes at this boundary so
// callers never re-inspect status codes:
//   - [ErrAuthRequired] — HTTP 401; terminal, never retried.
//   - *[StatusError]    — any other non-2xx; retryable where policy applies.
//   - *[EnvelopeError]  — 2xx carrying a non-empty error field; surfaced,
//     never retried.
//
// # What this package must NOT do
//
//   - Import storefront or session (no upward imports).
//   - Hold session state; the 401 hook is an injected callback.
//   - Be imported outside the storefront module.
package transport
