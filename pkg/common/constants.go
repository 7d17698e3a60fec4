package common

import "time"

const (
	// Redis cache keys for the read path. Snapshot keys are suffixed with
	// the region ID.
	CacheKeySnapshotPrefix = "sentiment:snapshot:"
	CacheKeyAllSnapshots   = "sentiment:snapshots:all"

	// DefaultCacheTTL bounds how stale a cached read can be between cycles.
	DefaultCacheTTL = 15 * time.Minute
)
