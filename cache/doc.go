// Package cache memoizes expensive engine handles behind composite keys.
//
// The cache keys each engine by owner identity, context attributes,
// pooling mode, acting principal, and a fingerprint of the owner's mutable
// configuration. Capacity is bounded and the oldest-inserted entry is
// evicted first (insertion-order FIFO, not LRU). Construction is delegated
// to a caller-supplied build function and always runs outside the cache
// lock, so a slow build never blocks unrelated lookups.
package cache
