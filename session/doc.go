// Package session provides the client-side session record: a small key/value
// store holding the authenticated identity (user id, email, role) for the
// lifetime of a client process.
//
// # Storage backends
//
// The [Store] interface deliberately does not commit to a storage medium. The
// default [MemoryStore] scopes the session to the current process, mirroring
// tab-scoped browser storage. [RedisStore] lets short-lived processes (CLI
// invocations) share one login.
//
// # Write ordering
//
// [Manager.SetUserSession] writes the role key last. [Manager.IsAuthenticated]
// requires both the user id and the role to be present, so an interrupted
// write can never be observed as a valid session.
//
// # What this package must NOT do
//
//   - Import storefront or transport (no upward imports).
//   - Make authorization decisions — membership checks belong to the gate.
//   - Talk to the backend; it only holds what login handed over.
package session
