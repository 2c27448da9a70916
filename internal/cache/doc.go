// Package cache provides a byte-bounded LRU cache for immutable blobs.
//
// The cache charges every cached byte to an optional resource.Controller so
// cached blobs and in-flight compression share one memory budget.
package cache
