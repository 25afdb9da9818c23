package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Guest token errors.
var (
	ErrEmptyToken    = errors.New("identity: guest token is empty")
	ErrNoResources   = errors.New("identity: guest token grants no resources")
	ErrInvalidClaims = errors.New("identity: guest token claims are invalid")
)

// GuestUsername is the username assigned when a guest token names none.
const GuestUsername = "guest_user"

// ResourceType identifies what kind of resource a guest token grants.
type ResourceType string

const (
	// ResourceDashboard is currently the only embeddable resource type.
	ResourceDashboard ResourceType = "dashboard"
)

// Resource is a single resource grant inside a guest token.
type Resource struct {
	Type ResourceType `json:"type"`
	ID   string       `json:"id"`
}

// UnmarshalJSON accepts both string and numeric resource IDs, since token
// issuers serialize dashboard IDs either way.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type ResourceType    `json:"type"`
		ID   json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Type = raw.Type

	var s string
	if err := json.Unmarshal(raw.ID, &s); err == nil {
		r.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err == nil {
		r.ID = n.String()
		return nil
	}
	return fmt.Errorf("%w: resource id is neither string nor number", ErrInvalidClaims)
}

// RLSRule is a row-level-security clause scoped to an optional dataset.
type RLSRule struct {
	Dataset string `json:"dataset,omitempty"`
	Clause  string `json:"clause"`
}

// GuestUser is the user block of a guest token.
type GuestUser struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// GuestClaims are the claims carried by an embedded-dashboard guest token.
type GuestClaims struct {
	jwt.RegisteredClaims

	User      GuestUser  `json:"user"`
	Resources []Resource `json:"resources"`
	RLSRules  []RLSRule  `json:"rls_rules,omitempty"`
}

// ParseGuestToken decodes and verifies an HS256-signed guest token.
// Expiry and not-before are validated by the JWT library; a token that
// grants no resources is rejected even if otherwise valid.
func ParseGuestToken(tokenString string, key []byte) (*GuestClaims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}

	claims := &GuestClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, fmt.Errorf("identity: guest token rejected: %w", err)
	}

	if len(claims.Resources) == 0 {
		return nil, ErrNoResources
	}
	return claims, nil
}

// GuestIdentity builds the acting identity for a guest token. The user ID
// resolver is optional: when the host application can map the username to
// a stored user it supplies the lookup, and failures are swallowed so a
// broken directory never blocks guest access.
func GuestIdentity(claims *GuestClaims, resolveID func(username string) (string, error)) *Identity {
	id := &Identity{
		Username:  claims.User.Username,
		FirstName: claims.User.FirstName,
		LastName:  claims.User.LastName,
		Guest:     true,
		Resources: claims.Resources,
		RLSRules:  claims.RLSRules,
	}
	if id.Username == "" {
		id.Username = GuestUsername
	}
	if id.FirstName == "" {
		id.FirstName = "Guest"
	}
	if id.LastName == "" {
		id.LastName = "User"
	}

	if resolveID != nil && id.Username != GuestUsername {
		if userID, err := resolveID(id.Username); err == nil && userID != "" {
			id.ID = userID
		}
	}
	return id
}

// FormatUserID renders a numeric user ID the way Token expects it.
func FormatUserID(n int64) string {
	return strconv.FormatInt(n, 10)
}
