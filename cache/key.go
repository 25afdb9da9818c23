package cache

import (
	"sort"
	"strconv"
	"strings"
)

// Sentinel is the normalized value for anything unspecified: empty context
// attributes, an unknown principal, or an unreadable configuration.
// An empty value and a missing value are deliberately not distinguishable.
const Sentinel = "default"

// Attr is one named context value affecting how an engine is built,
// e.g. schema, source, or catalog. Order is fixed by the caller and is
// part of the key.
type Attr struct {
	Name  string
	Value string
}

// Request describes one engine lookup.
type Request struct {
	// OwnerID identifies the owning database connection. Required for
	// caching; an empty OwnerID bypasses the cache entirely.
	OwnerID string

	// Context holds the ordered context attributes (schema, source,
	// catalog, ...). Empty values normalize to Sentinel.
	Context []Attr

	// NullPool disables connection pooling for the built engine. Always
	// part of the key, even at its default, because it materially changes
	// engine behavior.
	NullPool bool

	// Extra carries any additional build parameters. Entries are sorted
	// by name before keying, so key equality is independent of call-site
	// argument order.
	Extra map[string]string
}

// ComposeKey derives the cache key for a request. Two requests with the
// same owner, context values, pooling mode, principal, fingerprint, and
// extra entries produce byte-identical keys regardless of Extra insertion
// order.
//
// Layout: owner:ctx...:nullpool_<bool>:principal:fingerprint[:k=v,k=v]
func ComposeKey(req Request, principal, fingerprint string) string {
	if principal == "" {
		principal = Sentinel
	}
	if fingerprint == "" {
		fingerprint = Sentinel
	}

	parts := make([]string, 0, len(req.Context)+5)
	parts = append(parts, req.OwnerID)
	for _, attr := range req.Context {
		parts = append(parts, normalize(attr.Value))
	}
	parts = append(parts,
		"nullpool_"+strconv.FormatBool(req.NullPool),
		principal,
		fingerprint,
	)

	if len(req.Extra) > 0 {
		names := make([]string, 0, len(req.Extra))
		for name := range req.Extra {
			names = append(names, name)
		}
		sort.Strings(names)

		pairs := make([]string, 0, len(names))
		for _, name := range names {
			pairs = append(pairs, name+"="+req.Extra[name])
		}
		parts = append(parts, strings.Join(pairs, ","))
	}

	return strings.Join(parts, ":")
}

func normalize(v string) string {
	if v == "" {
		return Sentinel
	}
	return v
}
