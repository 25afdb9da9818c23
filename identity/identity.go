package identity

// DefaultToken is the isolation token used when no principal is known,
// e.g. outside a request context. It matches the cache key sentinel so
// that anonymous lookups share one cache slot per owner.
const DefaultToken = "default"

// Identity represents the acting principal of a request.
type Identity struct {
	// ID is the stable user identifier. May be empty for guest users
	// that could not be matched to a stored user.
	ID string

	// Username is the login name. For guest users this defaults to
	// "guest_user" when the token carries no username.
	Username string

	// FirstName and LastName are display names only.
	FirstName string
	LastName  string

	// Guest marks identities created from a guest token. Guest users are
	// considered authenticated but are not anonymous: they carry their
	// own resource grants independent of any public role.
	Guest bool

	// Resources lists the resources a guest token grants access to.
	// Empty for regular users.
	Resources []Resource

	// RLSRules are row-level-security clauses attached to a guest token.
	RLSRules []RLSRule
}

// Token returns the isolation token for this identity, used to keep
// cached engines from being shared across principals. Prefers the stable
// ID, falls back to the username, and finally to DefaultToken.
func (id *Identity) Token() string {
	if id == nil {
		return DefaultToken
	}
	if id.ID != "" {
		return "user_" + id.ID
	}
	if id.Username != "" {
		return "user_" + id.Username
	}
	return DefaultToken
}

// IsAnonymous reports whether this identity names no principal at all.
// Guest identities are not anonymous.
func (id *Identity) IsAnonymous() bool {
	if id == nil {
		return true
	}
	return !id.Guest && id.ID == "" && id.Username == ""
}
