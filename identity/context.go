package identity

import "context"

// Context key for identity values.
type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a new context with the given identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the identity from the context.
// Returns nil if no identity is present.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}

// TokenFromContext returns the isolation token for the identity in the
// context, or DefaultToken when none is attached. Absence of an identity
// is not an error; it is the normal state outside a request.
func TokenFromContext(ctx context.Context) string {
	return FromContext(ctx).Token()
}
