package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintFunc supplies a short hash of the owner's mutable
// configuration (connection URI, extra settings) so that configuration
// edits invalidate stale entries without an explicit invalidation call.
// A failure to read configuration must not fail the lookup; the cache
// falls back to Sentinel on error.
type FingerprintFunc func(ctx context.Context, ownerID string) (string, error)

// Fingerprint hashes the given configuration parts into a short digest
// suitable for FingerprintFunc implementations. The digest changes
// whenever any part changes.
func Fingerprint(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))[:8]
}
