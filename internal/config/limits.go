package config

import "time"

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to keep names short enough for tree rendering.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxPageLimit is the largest page size accepted by list and search endpoints.
	MaxPageLimit = 1000

	// MaxHierarchyDepth caps ancestor walks. Stored data deeper than this is
	// treated as corrupt (a cycle) rather than walked forever.
	MaxHierarchyDepth = 10000
)

const (
	// DefaultCacheTTL is how long a cached read stays valid.
	DefaultCacheTTL = 30 * time.Second

	// DefaultCacheMaxEntries bounds the read cache.
	DefaultCacheMaxEntries = 200
)
