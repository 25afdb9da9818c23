// Package identity resolves the acting principal for engine cache lookups.
//
// It carries the identity model, context attach/extract helpers, and the
// guest-token claims used by embedded dashboards. Full authentication flows
// (OAuth, session login) are the host application's concern; this package
// only answers "who is acting" well enough to isolate cached engines.
package identity
